package console

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
)

func TestInput(t *testing.T) {
	var out bytes.Buffer
	in := NewInput(strings.NewReader(" 42 \nforty\n  Ada Lovelace  \n"), &out)

	n, err := in.NextInt("How many?")
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	assert.Equal(t, "How many?\n> ", out.String())

	_, err = in.NextInt("")
	assert.ErrorIs(t, err, domain.ErrMalformedInput)

	s, err := in.NextText("")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", s)

	_, err = in.NextText("")
	assert.ErrorIs(t, err, io.EOF)
}
