package diff

// None marks the absent side of an inserted or deleted pairing
const None = -1

// Pairing is a single correspondence between an old line and a new line.
// Exactly one side is None for insertions and deletions.
type Pairing struct {
	OldIndex int `json:"old" yaml:"old"`
	NewIndex int `json:"new" yaml:"new"`

	// Moved is set when both sides are present but the index shifted
	Moved bool `json:"moved,omitempty" yaml:"moved,omitempty"`
	// Displaced is set when the pair was found by move detection, outside
	// the common subsequence of the two blocks
	Displaced bool `json:"displaced,omitempty" yaml:"displaced,omitempty"`
}

// IsInsert reports whether the pairing is a pure insertion
func (p Pairing) IsInsert() bool {
	return p.OldIndex == None && p.NewIndex != None
}

// IsDelete reports whether the pairing is a pure deletion
func (p Pairing) IsDelete() bool {
	return p.NewIndex == None && p.OldIndex != None
}

// IsMatch reports whether both sides are present
func (p Pairing) IsMatch() bool {
	return p.OldIndex != None && p.NewIndex != None
}

// Result is the alignment of two line sequences
type Result struct {
	Pairings      []Pairing `json:"pairings" yaml:"pairings"`
	InsertedCount int       `json:"inserted" yaml:"inserted"`
	DeletedCount  int       `json:"deleted" yaml:"deleted"`
}

// HasMoves reports whether any matched line changed position
func (r *Result) HasMoves() bool {
	for _, p := range r.Pairings {
		if p.Moved {
			return true
		}
	}
	return false
}

// HasDeletions reports whether any old line was removed
func (r *Result) HasDeletions() bool {
	return r.DeletedCount > 0
}

// HasInsertions reports whether any new line was added
func (r *Result) HasInsertions() bool {
	return r.InsertedCount > 0
}

// MovedCount returns the number of matched lines that changed position
func (r *Result) MovedCount() int {
	n := 0
	for _, p := range r.Pairings {
		if p.Moved {
			n++
		}
	}
	return n
}

// backbone returns the in-order matches, ascending on both sides
func (r *Result) backbone() []Pairing {
	var out []Pairing
	for _, p := range r.Pairings {
		if p.IsMatch() && !p.Displaced {
			out = append(out, p)
		}
	}
	return out
}

// DiffLineType indicates the type of diff line for rendering
type DiffLineType int

const (
	DiffTypeHeader DiffLineType = iota
	DiffTypeContext
	DiffTypeDeleted
	DiffTypeInserted
	DiffTypeMoved
	DiffTypeSummary
	DiffTypeBlank
)

// DiffLine represents a rendered line in diff output
type DiffLine struct {
	Type    DiffLineType
	Content string
	Indent  int // Indentation level
}
