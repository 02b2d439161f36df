package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clientlens/clientlens-api/internal/core/domain"
)

func TestMaskPhone(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"india with space", "+91 1234567890", "+91 12xxxxxx90"},
		{"india compact", "+911234567890", "+9112xxxxxx90"},
		{"india dashed", "+91-12345-67890", "+91 12xxxxxx90"},
		{"us eleven digits", "+1 5551234567", "+1 55xxxxxx67"},
		{"long subscriber", "+44 207946012345", "+44 20xxxxxxxx45"},
		{"local number", "555-1234", "55xxxx34"},
		{"too few digits after code", "+91 12345", "+9xxxxx45"},
		{"four chars", "1234", "1234"},
		{"short passes through", "123", "123"},
		{"absent", "", Placeholder},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MaskPhone(tc.in))
		})
	}
}

func TestMaskPhone_Idempotent(t *testing.T) {
	inputs := []string{
		"+91 1234567890",
		"+911234567890",
		"+1 5551234567",
		"555-1234",
		"+91 12345",
		"12",
	}
	for _, in := range inputs {
		once := MaskPhone(in)
		assert.Equal(t, once, MaskPhone(once), "masking %q twice changed the output", in)
	}
}

func TestMaskPhone_NeverLengthensCountryCoded(t *testing.T) {
	inputs := []string{
		"+91 1234567890",
		"+911234567890",
		"+91 (123) 456-7890",
		"+44 20 7946 0123",
		"+1 555 123 4567 89",
	}
	for _, in := range inputs {
		out := MaskPhone(in)
		assert.LessOrEqual(t, len(out), len(in), "%q -> %q", in, out)
	}
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "clxxxx@company.com", MaskEmail("client1@company.com"))
	assert.Equal(t, "abxxxx@x.io", MaskEmail("ab@x.io"))
	assert.Equal(t, "axxxx@x.io", MaskEmail("a@x.io"))
	assert.Equal(t, "xxxx@x.io", MaskEmail("@x.io"))
	assert.Equal(t, "noxxxxxxxxil", MaskEmail("not-an-email"))
	assert.Equal(t, Placeholder, MaskEmail(""))
}

func TestRedact_DoesNotTouchInput(t *testing.T) {
	clients := []domain.Client{
		{Name: "Client 1", Email: "client1@company.com", Phone: "+91 1234567890"},
		{Name: "Client 2"},
	}

	out := RedactAll(clients)

	assert.Equal(t, "+91 12xxxxxx90", out[0].Phone)
	assert.Equal(t, "clxxxx@company.com", out[0].Email)
	assert.Equal(t, Placeholder, out[1].Phone)
	assert.Equal(t, Placeholder, out[1].Email)

	assert.Equal(t, "+91 1234567890", clients[0].Phone)
	assert.Equal(t, "client1@company.com", clients[0].Email)
}
