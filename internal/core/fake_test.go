package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// fakeQuerier answers QueryJSON from canned JSON keyed by the joined args.
type fakeQuerier struct {
	responses map[string]string
	failures  map[string]error
	calls     [][]string
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{responses: map[string]string{}, failures: map[string]error{}}
}

func (f *fakeQuerier) on(body string, args ...string) *fakeQuerier {
	f.responses[strings.Join(args, " ")] = body
	return f
}

func (f *fakeQuerier) fail(err error, args ...string) *fakeQuerier {
	f.failures[strings.Join(args, " ")] = err
	return f
}

func (f *fakeQuerier) QueryJSON(ctx context.Context, v any, args ...string) error {
	f.calls = append(f.calls, append([]string(nil), args...))
	key := strings.Join(args, " ")
	if err, ok := f.failures[key]; ok {
		return err
	}
	body, ok := f.responses[key]
	if !ok {
		return fmt.Errorf("fakeQuerier: unexpected query %q", key)
	}
	return json.Unmarshal([]byte(body), v)
}

// fakeLocator records what it was asked to locate.
type fakeLocator struct {
	path   string
	err    error
	config Locator
	calls  [][2]string
}

func (f *fakeLocator) Locate(project, scheme string) (string, error) {
	f.calls = append(f.calls, [2]string{project, scheme})
	return f.path, f.err
}

// actionsJSON renders a minimal ActionsInvocationRecord. Each action is a
// command name and an optional log id ("" omits actionResult).
func actionsJSON(actions ...[2]string) string {
	values := make([]string, 0, len(actions))
	for _, a := range actions {
		entry := fmt.Sprintf(`{"_type":{"_name":"ActionRecord"},"schemeCommandName":{"_type":{"_name":"String"},"_value":%q}`, a[0])
		if a[1] != "" {
			entry += fmt.Sprintf(`,"actionResult":{"_type":{"_name":"ActionResult"},"logRef":{"_type":{"_name":"Reference"},"id":{"_type":{"_name":"String"},"_value":%q}}}`, a[1])
		}
		entry += "}"
		values = append(values, entry)
	}
	return fmt.Sprintf(`{"_type":{"_name":"ActionsInvocationRecord"},"actions":{"_type":{"_name":"Array"},"_values":[%s]}}`, strings.Join(values, ","))
}
