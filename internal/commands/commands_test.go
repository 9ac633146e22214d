package commands

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(got *string) *Registry {
	r := NewRegistry()
	fs := flag.NewFlagSet("bounds", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	project := fs.String("project", "", "project file")
	r.Register("bounds", "print data bounds", fs, func() error {
		*got = *project
		return nil
	})
	fail := flag.NewFlagSet("fail", flag.ContinueOnError)
	r.Register("fail", "always fails", fail, func() error { return errors.New("boom") })
	return r
}

func TestExecute(t *testing.T) {
	var got string
	r := newRegistry(&got)

	require.NoError(t, r.Execute([]string{"bounds", "-project", "site.json"}))
	assert.Equal(t, "site.json", got)

	assert.EqualError(t, r.Execute([]string{"fail"}), "boom")
	assert.Error(t, r.Execute([]string{"bounds", "-nope"}))

	err := r.Execute(nil)
	assert.True(t, errors.Is(err, ErrUsage))
	err = r.Execute([]string{"render"})
	assert.True(t, errors.Is(err, ErrUsage))
}

func TestUsage(t *testing.T) {
	var got string
	r := newRegistry(&got)
	assert.Equal(t, []string{"bounds", "fail"}, r.Names())

	var buf bytes.Buffer
	r.Usage(&buf, "drillview")
	assert.Contains(t, buf.String(), "usage: drillview <command> [flags]")
	assert.Contains(t, buf.String(), "  bounds     print data bounds\n")
}
