package socketlabs

// CustomHeader is a message or attachment header added to the generated
// MIME message.
type CustomHeader struct {
	Name  string
	Value string
}

// IsValid reports whether both Name and Value are non-blank.
func (h CustomHeader) IsValid() bool {
	return !isBlank(h.Name) && !isBlank(h.Value)
}

func (h CustomHeader) String() string {
	return h.Name + ", " + h.Value
}

// Metadata is a key/value pair attached to a message for tracking. It is not
// added to the delivered message.
type Metadata struct {
	Key   string
	Value string
}

// IsValid reports whether both Key and Value are non-blank.
func (m Metadata) IsValid() bool {
	return !isBlank(m.Key) && !isBlank(m.Value)
}

func (m Metadata) String() string {
	return m.Key + ", " + m.Value
}
