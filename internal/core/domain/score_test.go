package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreContact_NameMatching(t *testing.T) {
	tests := []struct {
		name      string
		contact   Contact
		query     string
		wantScore int
		wantKind  MatchKind
	}{
		{
			name:      "prefix match",
			contact:   Contact{Name: "Alice Smith"},
			query:     "ali",
			wantScore: ScoreNamePrefix,
			wantKind:  MatchPrefix,
		},
		{
			name:      "contains match",
			contact:   Contact{Name: "Bob Alicecorp"},
			query:     "alice",
			wantScore: ScoreNameContains,
			wantKind:  MatchContains,
		},
		{
			name:      "case insensitive",
			contact:   Contact{Name: "ALICE smith"},
			query:     "AlIcE",
			wantScore: ScoreNamePrefix,
			wantKind:  MatchPrefix,
		},
		{
			name:      "no match",
			contact:   Contact{Name: "Carol Jones"},
			query:     "alice",
			wantScore: 0,
			wantKind:  MatchNone,
		},
		{
			name:      "empty name",
			contact:   Contact{},
			query:     "alice",
			wantScore: 0,
			wantKind:  MatchNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ScoreContact(tt.contact, tt.query)
			assert.Equal(t, tt.wantScore, m.Score)
			assert.Equal(t, tt.wantKind, m.Detail.Name)
		})
	}
}

func TestScoreContact_EmailMatching(t *testing.T) {
	tests := []struct {
		name      string
		emails    []string
		query     string
		wantScore int
		wantEmail string
	}{
		{
			name:      "prefix on first email",
			emails:    []string{"alice@x.com", "alice@y.com"},
			query:     "alice",
			wantScore: ScoreEmailPrefix,
			wantEmail: "alice@x.com",
		},
		{
			name:      "contains only",
			emails:    []string{"work.alice@x.com"},
			query:     "alice",
			wantScore: ScoreEmailContains,
			wantEmail: "work.alice@x.com",
		},
		{
			name:      "prefix beats earlier contains",
			emails:    []string{"work.alice@x.com", "alice@y.com"},
			query:     "alice",
			wantScore: ScoreEmailPrefix,
			wantEmail: "alice@y.com",
		},
		{
			name:      "single winner only",
			emails:    []string{"alice@x.com", "alice@y.com", "alice@z.com"},
			query:     "alice",
			wantScore: ScoreEmailPrefix,
			wantEmail: "alice@x.com",
		},
		{
			name:      "no emails",
			emails:    nil,
			query:     "alice",
			wantScore: 0,
			wantEmail: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ScoreContact(Contact{Emails: tt.emails}, tt.query)
			assert.Equal(t, tt.wantScore, m.Score)
			assert.Equal(t, tt.wantEmail, m.Detail.Email)
		})
	}
}

func TestScoreContact_OrganizationMatching(t *testing.T) {
	prefix := ScoreContact(Contact{Organization: "Alice Corp"}, "alice")
	assert.Equal(t, ScoreOrgPrefix, prefix.Score)
	assert.Equal(t, MatchPrefix, prefix.Detail.Organization)

	contains := ScoreContact(Contact{Organization: "The Alice Corp"}, "alice")
	assert.Equal(t, ScoreOrgContains, contains.Score)
	assert.Equal(t, MatchContains, contains.Detail.Organization)
}

func TestScoreContact_SumsAcrossFields(t *testing.T) {
	c := Contact{
		Name:         "Alice Smith",
		Emails:       []string{"alice@x.com"},
		Organization: "Alice Corp",
	}

	m := ScoreContact(c, "alice")

	assert.Equal(t, ScoreNamePrefix+ScoreEmailPrefix+ScoreOrgPrefix, m.Score)
}

func TestScoreContact_EmptyQuery(t *testing.T) {
	m := ScoreContact(Contact{Name: "Alice"}, "")

	assert.Equal(t, 0, m.Score)
	assert.Equal(t, MatchNone, m.Detail.Name)
}

// TestRankContacts_Scenario covers the canonical two-contact ranking:
// Alice Smith scores name-prefix + email-prefix = 180, Bob Alicecorp
// scores name-contains + org-prefix = 110.
func TestRankContacts_Scenario(t *testing.T) {
	contacts := []Contact{
		{ID: "1", Name: "Alice Smith", Emails: []string{"alice@x.com"}},
		{ID: "2", Name: "Bob Alicecorp", Organization: "Alice Corp"},
	}

	results := RankContacts(contacts, "alice", DefaultResultLimit)

	require.Len(t, results, 2)
	assert.Equal(t, "Alice Smith", results[0].Contact.Name)
	assert.Equal(t, 180, results[0].Score)
	assert.Equal(t, "Bob Alicecorp", results[1].Contact.Name)
	assert.Equal(t, 110, results[1].Score)
}

func TestRankContacts_FiltersNonMatches(t *testing.T) {
	contacts := []Contact{
		{ID: "1", Name: "Alice"},
		{ID: "2", Name: "Carol"},
	}

	results := RankContacts(contacts, "alice", DefaultResultLimit)

	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].Contact.ID)
}

func TestRankContacts_TruncatesToLimit(t *testing.T) {
	contacts := make([]Contact, 25)
	for i := range contacts {
		contacts[i] = Contact{
			ID:   fmt.Sprintf("c%02d", i),
			Name: fmt.Sprintf("Alice %02d", i),
		}
	}

	results := RankContacts(contacts, "alice", DefaultResultLimit)

	assert.Len(t, results, DefaultResultLimit)
}

func TestRankContacts_SortInvariant(t *testing.T) {
	contacts := []Contact{
		{ID: "1", Name: "Zed", Organization: "Alice Corp"},       // org prefix: 60
		{ID: "2", Name: "Alice Jones"},                           // name prefix: 100
		{ID: "3", Name: "Mr Alice"},                              // name contains: 50
		{ID: "4", Emails: []string{"alice@x.com"}},               // email prefix: 80
		{ID: "5", Name: "Alice", Emails: []string{"alice@corp"}}, // 180
	}

	results := RankContacts(contacts, "alice", DefaultResultLimit)

	require.Len(t, results, 5)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestRankContacts_TieBreakByNameThenID(t *testing.T) {
	contacts := []Contact{
		{ID: "b", Name: "alice two"},
		{ID: "a", Name: "Alice one"},
		{ID: "2", Name: "Alice same"},
		{ID: "1", Name: "alice same"},
	}

	results := RankContacts(contacts, "alice", DefaultResultLimit)

	require.Len(t, results, 4)
	assert.Equal(t, "a", results[0].Contact.ID) // "alice one"
	assert.Equal(t, "1", results[1].Contact.ID) // "alice same", lower ID
	assert.Equal(t, "2", results[2].Contact.ID)
	assert.Equal(t, "b", results[3].Contact.ID)
}

func TestRankContacts_Deterministic(t *testing.T) {
	contacts := []Contact{
		{ID: "1", Name: "Alice Smith", Emails: []string{"alice@x.com"}},
		{ID: "2", Name: "Bob Alicecorp", Organization: "Alice Corp"},
		{ID: "3", Emails: []string{"team-alice@x.com"}},
	}

	first := RankContacts(contacts, "alice", DefaultResultLimit)
	second := RankContacts(contacts, "alice", DefaultResultLimit)

	assert.Equal(t, first, second)
}

func TestRankContacts_BlankQuery(t *testing.T) {
	contacts := []Contact{{ID: "1", Name: "Alice"}}

	assert.Nil(t, RankContacts(contacts, "", DefaultResultLimit))
	assert.Nil(t, RankContacts(contacts, "   ", DefaultResultLimit))
}

func TestRankContacts_AllResultsMatchSubstring(t *testing.T) {
	contacts := []Contact{
		{ID: "1", Name: "Alice Smith", Emails: []string{"asmith@x.com"}},
		{ID: "2", Name: "Bob", Emails: []string{"bob@alice.org"}},
		{ID: "3", Name: "Carol", Organization: "Wonderland Alice"},
		{ID: "4", Name: "Dave", Emails: []string{"dave@x.com"}},
	}

	results := RankContacts(contacts, "alice", DefaultResultLimit)

	require.Len(t, results, 3)
	for _, m := range results {
		matched := m.Detail.Name != MatchNone ||
			m.Detail.Email != "" ||
			m.Detail.Organization != MatchNone
		assert.True(t, matched, "result %q has no matching field", m.Contact.ID)
	}
}

func TestMatchKind_String(t *testing.T) {
	assert.Equal(t, "none", MatchNone.String())
	assert.Equal(t, "prefix", MatchPrefix.String())
	assert.Equal(t, "contains", MatchContains.String())
}
