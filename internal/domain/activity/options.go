package activity

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ListOptions filters and pages the activity log. Entries are newest first.
type ListOptions struct {
	ProjectID string
	Type      *Type
	Limit     int
	Offset    int
}

func (o ListOptions) normalized() ListOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}
