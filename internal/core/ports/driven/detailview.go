package driven

import "context"

// DetailView is the external contact detail surface a committed search
// result is handed to.
type DetailView interface {
	// OpenAndSelect requests the detail surface to open for the contact
	// with the given identifier and activate its entry if present.
	// Best-effort and fire-and-forget: if the entry is not yet rendered
	// the handoff silently does nothing further. No retry, no error
	// surfaced to the search core.
	OpenAndSelect(ctx context.Context, id string)
}
