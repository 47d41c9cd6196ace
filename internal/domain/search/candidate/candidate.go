package candidate

// Provenance identifies the scoring mechanism that produced a candidate score.
type Provenance string

// Provenance constants. Fuzzy and fulltext are deliberately distinct so that
// similarity-based and rank-based keyword scores are never conflated.
const (
	Vector   Provenance = "vector"
	Fulltext Provenance = "fulltext"
	Fuzzy    Provenance = "fuzzy"
	Hybrid   Provenance = "hybrid"
)

// Source identifies which retrieval mode surfaced a hybrid candidate.
type Source string

// Match source constants.
const (
	SourceVector  Source = "vector"
	SourceKeyword Source = "keyword"
)

// Components holds the per-mode scores of a hybrid candidate.
type Components struct {
	Vector  float64
	Keyword float64
	RRF     float64
	Hybrid  float64
}

// Candidate is a single chunk-level retrieval hit. Created once by a
// retriever and never mutated; normalization produces a new value.
type Candidate struct {
	documentID string
	chunkIndex int
	content    string
	score      float64
	provenance Provenance
	components Components
	sources    []Source
}

// New creates a candidate scored by a single-mode retriever.
func New(documentID string, chunkIndex int, content string, score float64, p Provenance) Candidate {
	return Candidate{
		documentID: documentID,
		chunkIndex: chunkIndex,
		content:    content,
		score:      score,
		provenance: p,
	}
}

// NewHybrid creates a fused candidate carrying all component scores.
// The candidate's score is the hybrid score; sources lists the modes in
// which the chunk appeared.
func NewHybrid(
	documentID string, chunkIndex int, content string,
	comps Components, sources []Source,
) Candidate {
	return Candidate{
		documentID: documentID,
		chunkIndex: chunkIndex,
		content:    content,
		score:      comps.Hybrid,
		provenance: Hybrid,
		components: comps,
		sources:    sources,
	}
}

// WithScore returns a copy of the candidate with a replaced score and
// provenance. Used by normalization; the receiver is unchanged.
func (c Candidate) WithScore(score float64, p Provenance) Candidate {
	c.score = score
	c.provenance = p
	return c
}

// DocumentID returns the owning document identifier.
func (c *Candidate) DocumentID() string { return c.documentID }

// ChunkIndex returns the chunk position within the document.
func (c *Candidate) ChunkIndex() int { return c.chunkIndex }

// Content returns the chunk text.
func (c *Candidate) Content() string { return c.content }

// Score returns the candidate score (raw before normalization, [0,1] after).
func (c *Candidate) Score() float64 { return c.score }

// Provenance returns the scoring mechanism tag.
func (c *Candidate) Provenance() Provenance { return c.provenance }

// Components returns the per-mode scores (zero for single-mode candidates).
func (c *Candidate) Components() Components { return c.components }

// Sources returns the modes that surfaced this candidate (hybrid only).
func (c *Candidate) Sources() []Source { return c.sources }
