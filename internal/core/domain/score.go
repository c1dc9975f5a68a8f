package domain

import (
	"sort"
	"strings"
)

// Scoring weights per matched field. A contact can score on several
// fields at once; the total is the sum of the field components.
const (
	ScoreNamePrefix    = 100
	ScoreNameContains  = 50
	ScoreEmailPrefix   = 80
	ScoreEmailContains = 40
	ScoreOrgPrefix     = 60
	ScoreOrgContains   = 30
)

// DefaultResultLimit bounds the quick-search result set.
const DefaultResultLimit = 10

// MatchKind describes how a field matched the query.
type MatchKind int

// Field match kinds, ordered from weakest to strongest.
const (
	// MatchNone means the field did not match.
	MatchNone MatchKind = iota

	// MatchContains means the query occurs somewhere in the field.
	MatchContains

	// MatchPrefix means the field starts with the query.
	MatchPrefix
)

// String returns the string representation of the match kind.
func (k MatchKind) String() string {
	switch k {
	case MatchPrefix:
		return "prefix"
	case MatchContains:
		return "contains"
	default:
		return "none"
	}
}

// MatchDetail records which fields of a contact matched the query.
type MatchDetail struct {
	// Name is how the contact name matched.
	Name MatchKind

	// Email is the matched email address, or "" when no email matched.
	Email string

	// Organization is how the organisation matched.
	Organization MatchKind
}

// ScoredMatch pairs a contact with its relevance score for a query.
type ScoredMatch struct {
	// Contact is the matched directory record.
	Contact Contact

	// Score is the non-negative relevance score.
	Score int

	// Detail records the per-field match metadata.
	Detail MatchDetail
}

// ScoreContact computes the relevance score of a contact for a query.
// Pure and deterministic: case-insensitive, no side effects.
//
// Name: prefix +100, contains +50. Email: the list is scanned in order,
// first with a prefix match +80, otherwise first containing the query
// +40; a single email contributes. Organisation: prefix +60, contains
// +30. A contact is a candidate iff the total is greater than zero.
func ScoreContact(c Contact, query string) ScoredMatch {
	q := strings.ToLower(query)
	m := ScoredMatch{Contact: c}
	if q == "" {
		return m
	}

	switch kind := matchField(c.Name, q); kind {
	case MatchPrefix:
		m.Score += ScoreNamePrefix
		m.Detail.Name = kind
	case MatchContains:
		m.Score += ScoreNameContains
		m.Detail.Name = kind
	case MatchNone:
	}

	if email, kind := matchEmails(c.Emails, q); kind != MatchNone {
		if kind == MatchPrefix {
			m.Score += ScoreEmailPrefix
		} else {
			m.Score += ScoreEmailContains
		}
		m.Detail.Email = email
	}

	switch kind := matchField(c.Organization, q); kind {
	case MatchPrefix:
		m.Score += ScoreOrgPrefix
		m.Detail.Organization = kind
	case MatchContains:
		m.Score += ScoreOrgContains
		m.Detail.Organization = kind
	case MatchNone:
	}

	return m
}

// matchField classifies how a single field matches the lowercased query.
func matchField(field, q string) MatchKind {
	if field == "" {
		return MatchNone
	}
	f := strings.ToLower(field)
	switch {
	case strings.HasPrefix(f, q):
		return MatchPrefix
	case strings.Contains(f, q):
		return MatchContains
	default:
		return MatchNone
	}
}

// matchEmails scans the email list in order. A prefix match anywhere in
// the list beats a contains match, so the prefix pass runs first.
func matchEmails(emails []string, q string) (string, MatchKind) {
	for _, e := range emails {
		if strings.HasPrefix(strings.ToLower(e), q) {
			return e, MatchPrefix
		}
	}
	for _, e := range emails {
		if strings.Contains(strings.ToLower(e), q) {
			return e, MatchContains
		}
	}
	return "", MatchNone
}

// RankContacts scores every contact against the query, keeps candidates
// with a positive score, orders them by descending score and truncates
// to limit. Ties are broken by case-insensitive name, then by ID, so the
// ordering never depends on the input order of the directory.
//
// A blank query yields no scoring pass at all and returns nil; callers
// handle the empty case upstream.
func RankContacts(contacts []Contact, query string, limit int) []ScoredMatch {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultResultLimit
	}

	matches := make([]ScoredMatch, 0, limit)
	for _, c := range contacts {
		if m := ScoreContact(c, query); m.Score > 0 {
			matches = append(matches, m)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		ni := strings.ToLower(matches[i].Contact.Name)
		nj := strings.ToLower(matches[j].Contact.Name)
		if ni != nj {
			return ni < nj
		}
		return matches[i].Contact.ID < matches[j].Contact.ID
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
