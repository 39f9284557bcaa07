package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptString(t *testing.T) {
	u := New(&bytes.Buffer{}, false)
	assert.Equal(t, "> ", u.PromptString("", "parameters"))
	assert.Equal(t, "ana > ", u.PromptString("ana", ""))
	assert.Equal(t, "ana [hotel] > ", u.PromptString("ana", "hotel"))

	colored := New(&bytes.Buffer{}, true).PromptString("ana", "hotel")
	assert.Contains(t, colored, string(ColorLightBlue))
	assert.Contains(t, colored, "[hotel]")
}

func TestMessagesWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	u := New(&buf, false)
	u.Error("bad")
	u.Warning("hmm")
	u.Success("ok")
	u.Field("Country", "")

	assert.Equal(t, "! bad\n? hmm\nok\n  Country:           -\n", buf.String())
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Table([]string{"#", "Name"}, [][]string{{"1", "Ella"}, {"2", "Kandy"}})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "#  Name", strings.TrimRight(lines[0], " "))
	assert.Equal(t, "-  ----", strings.TrimRight(lines[1], " "))
	assert.Equal(t, "2  Kandy", strings.TrimRight(lines[3], " "))
}

func TestReadInput(t *testing.T) {
	var out bytes.Buffer
	u := NewWithInput(&out, strings.NewReader("secret\r\nlast"), false)

	pw, err := u.ReadPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "secret", pw)

	line, err := u.ReadLine("Name: ")
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = u.ReadLine("> ")
	assert.Error(t, err)
	assert.Equal(t, "Password: Name: > ", out.String())
}

func TestReadlineUsesPrompt(t *testing.T) {
	var out bytes.Buffer
	u := NewWithInput(&out, strings.NewReader("plan list\n"), false)
	assert.False(t, u.Interactive())

	u.SetPrompt("ana > ")
	line, err := u.Readline()
	require.NoError(t, err)
	assert.Equal(t, "plan list", line)
	assert.Equal(t, "ana > ", out.String())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1500.00", Money(decimal.RequireFromString("1500")))
	assert.Equal(t, "-", NullMoney(decimal.NullDecimal{}))
	assert.Equal(t, "12.50", NullMoney(decimal.NewNullDecimal(decimal.RequireFromString("12.5"))))
	assert.Equal(t, "-", Int(0))
	assert.Equal(t, "Sigiri...", Truncate("Sigiriya Rock", 9))
	assert.Equal(t, "Ella", Truncate("Ella", 9))
}
