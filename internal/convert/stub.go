package convert

import "context"

// Stub reports a request without converting anything. It never touches the
// filesystem and never fails.
type Stub struct{}

func (Stub) Name() string { return "stub" }

func (s Stub) Convert(_ context.Context, req Request) (Result, error) {
	res := resultFor(req, s.Name())
	res.Stub = true
	return res, nil
}
