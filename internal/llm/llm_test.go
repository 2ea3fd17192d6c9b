package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	out *schema.Message
	err error
	got []*schema.Message
}

func (f *fakeModel) Generate(_ context.Context, in []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func (f *fakeModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func TestRespond_BuildsMessageSequence(t *testing.T) {
	f := &fakeModel{out: schema.AssistantMessage("reply", nil)}
	r := NewChatResponder(f, 0)

	history := []*schema.Message{
		schema.UserMessage("earlier question"),
		schema.AssistantMessage("earlier answer", nil),
	}
	got, err := r.Respond(context.Background(), "system role", "the prompt", history)
	require.NoError(t, err)
	assert.Equal(t, "reply", got)

	require.Len(t, f.got, 4)
	assert.Equal(t, schema.System, f.got[0].Role)
	assert.Equal(t, "system role", f.got[0].Content)
	assert.Equal(t, "earlier question", f.got[1].Content)
	assert.Equal(t, "earlier answer", f.got[2].Content)
	assert.Equal(t, schema.User, f.got[3].Role)
	assert.Equal(t, "the prompt", f.got[3].Content)
}

func TestRespond_WrapsFailuresAsModelUnavailable(t *testing.T) {
	f := &fakeModel{err: errors.New("connection refused")}
	r := NewChatResponder(f, 0)

	_, err := r.Respond(context.Background(), "role", "prompt", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModelUnavailable))
	assert.Contains(t, err.Error(), "connection refused")
}
