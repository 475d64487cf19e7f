package domain

// Executor is a person tasks can be proposed to.
type Executor struct {
	ID    int    `json:"id"    yaml:"id"`
	Name  string `json:"name"  yaml:"name"`
	Phone string `json:"phone" yaml:"phone"`
}

// Segment is a named group of executors usable as a single proposal target.
type Segment struct {
	ID          int    `json:"id"           yaml:"id"`
	Name        string `json:"name"         yaml:"name"`
	MemberCount int    `json:"member_count" yaml:"member_count"`
}
