package gateway_test

import (
	"context"

	"pardakht/pkg/soap"
)

// remoteCall records one invocation of the fake transport.
type remoteCall struct {
	endpoint string
	action   string
	body     map[string]any
}

// fakeTransport serves canned responses (or errors) per action and
// records every call for assertions.
type fakeTransport struct {
	responses map[string]soap.Response
	errs      map[string]error
	calls     []remoteCall
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		responses: map[string]soap.Response{},
		errs:      map[string]error{},
	}
}

func (f *fakeTransport) Call(_ context.Context, endpoint, action string, body map[string]any) (soap.Response, error) {
	f.calls = append(f.calls, remoteCall{endpoint: endpoint, action: action, body: body})
	if err := f.errs[action]; err != nil {
		return nil, err
	}
	return f.responses[action], nil
}

// count returns how many times the named action was invoked.
func (f *fakeTransport) count(action string) int {
	n := 0
	for _, c := range f.calls {
		if c.action == action {
			n++
		}
	}
	return n
}

// last returns the body of the most recent call to the named action.
func (f *fakeTransport) last(action string) map[string]any {
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].action == action {
			return f.calls[i].body
		}
	}
	return nil
}
