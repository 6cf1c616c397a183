package types

import "encoding/json"

type Platform string

type Result struct {
	Platform Platform `json:"platform"`
	Module   string   `json:"module"`
	Filename string
	Data     interface{} `json:"data"`
}

type ResultOption func(*Result)

func NewResult(platform Platform, module string, data interface{}, opts ...ResultOption) Result {
	r := &Result{
		Platform: platform,
		Module:   module,
		Data:     data,
	}

	for _, opt := range opts {
		opt(r)
	}
	return *r
}

func WithFilename(filename string) ResultOption {
	return func(r *Result) {
		r.Filename = filename
	}
}

func (r *Result) String() string {
	d, _ := json.MarshalIndent(r.Data, "", "  ")
	return string(d)
}

func (r *Result) Json() []byte {
	d, _ := json.Marshal(r)
	return d
}

func (r *Result) DataJson() []byte {
	d, _ := json.Marshal(r.Data)
	return d
}
