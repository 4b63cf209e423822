package conversation

// Turn roles. The reasoning engine expects alternating user/model turns.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one entry in an interview's transcript.
type Turn struct {
	Role string
	Text string
}

// Context is the ordered, append-only transcript anchoring every
// reasoning call for one interview session. It is created with two seed
// turns (the interviewer framing and the model's acknowledgement) and
// grows by one user/model pair per coaching exchange. The Context itself
// is not goroutine-safe; the owning Session serializes access.
type Context struct {
	turns []Turn
}

// NewContext builds a fresh transcript seeded with the framing prompt and
// the model acknowledgement.
func NewContext(framing, acknowledgement string) *Context {
	return &Context{
		turns: []Turn{
			{Role: RoleUser, Text: framing},
			{Role: RoleModel, Text: acknowledgement},
		},
	}
}

// AppendUser adds a candidate-originated turn.
func (c *Context) AppendUser(text string) {
	c.turns = append(c.turns, Turn{Role: RoleUser, Text: text})
}

// AppendModel adds a reasoning-engine turn.
func (c *Context) AppendModel(text string) {
	c.turns = append(c.turns, Turn{Role: RoleModel, Text: text})
}

// Turns returns a copy of the transcript in arrival order.
func (c *Context) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns recorded so far.
func (c *Context) Len() int {
	return len(c.turns)
}
