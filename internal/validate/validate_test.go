package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() Request {
	return Request{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "+1 (555) 123-4567",
		Company: "Acme",
		Message: "Hello",
	}
}

func TestSanitize_StripsDisallowedCharacters(t *testing.T) {
	got := Sanitize(`<script>alert('x');</script> "quoted"`)
	assert.NotContains(t, got, "<")
	assert.NotContains(t, got, ">")
	assert.NotContains(t, got, "'")
	assert.NotContains(t, got, `"`)
	assert.NotContains(t, got, ";")
	assert.Equal(t, "scriptalert(x)/script quoted", got)
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"plain text",
		`<b>bold</b>`,
		`a;b'c"d<e>f`,
		"  padded  ",
		"",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "sanitize must be a no-op on sanitized input %q", in)
	}
}

func TestContact_Valid(t *testing.T) {
	c, err := Contact(validRequest())
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, "jane@example.com", c.Email)
	require.NotNil(t, c.Phone)
	assert.Equal(t, "+1 (555) 123-4567", *c.Phone)
	assert.Equal(t, "Acme", c.Company)
	assert.Equal(t, "Hello", c.Message)
}

func TestContact_MissingRequiredFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*Request)
	}{
		{"name", func(r *Request) { r.Name = "" }},
		{"email", func(r *Request) { r.Email = "" }},
		{"company", func(r *Request) { r.Company = "" }},
		{"message", func(r *Request) { r.Message = "  " }},
	}
	for _, tc := range cases {
		req := validRequest()
		tc.mutate(&req)
		_, err := Contact(req)
		require.Error(t, err, "field %s", tc.field)
		assert.Contains(t, err.Error(), tc.field)
	}
}

func TestContact_FieldOrderFirstFailureWins(t *testing.T) {
	// Both name and email missing: the error must name the first field.
	req := validRequest()
	req.Name = ""
	req.Email = ""
	_, err := Contact(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
	assert.NotContains(t, err.Error(), "email")
}

func TestContact_InvalidEmailFormats(t *testing.T) {
	for _, email := range []string{
		"not-an-email",
		"missing@tld",
		"@example.com",
		"user@.com",
		"user@example.c",
		"user example@example.com",
	} {
		req := validRequest()
		req.Email = email
		_, err := Contact(req)
		require.Error(t, err, "email %q", email)
		assert.Contains(t, err.Error(), "Invalid email format")
	}
}

func TestContact_PhoneOptional(t *testing.T) {
	req := validRequest()
	req.Phone = ""
	c, err := Contact(req)
	require.NoError(t, err)
	assert.Nil(t, c.Phone)
}

func TestContact_PhoneCharset(t *testing.T) {
	req := validRequest()
	req.Phone = "call me maybe"
	_, err := Contact(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid phone number format")
}

func TestContact_PhoneLengthCountsRunes(t *testing.T) {
	// 15 two-byte digits exceed 20 bytes but not the 20-character bound;
	// the charset check must reject them, not the length check.
	req := validRequest()
	req.Phone = strings.Repeat("٠", 15)
	_, err := Contact(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid phone number format")
	assert.NotContains(t, err.Error(), "must not exceed")
}

func TestContact_OversizedFieldsRejected(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*Request)
	}{
		{"name", func(r *Request) { r.Name = strings.Repeat("a", MaxNameLen+1) }},
		{"company", func(r *Request) { r.Company = strings.Repeat("b", MaxCompanyLen+1) }},
		{"message", func(r *Request) { r.Message = strings.Repeat("c", MaxMessageLen+1) }},
		{"phone", func(r *Request) { r.Phone = strings.Repeat("1", MaxPhoneLen+1) }},
	}
	for _, tc := range cases {
		req := validRequest()
		tc.mutate(&req)
		_, err := Contact(req)
		require.Error(t, err, "field %s", tc.field)
		assert.Contains(t, err.Error(), "must not exceed")
	}
}

func TestContact_AtExactBoundAccepted(t *testing.T) {
	req := validRequest()
	req.Message = strings.Repeat("m", MaxMessageLen)
	_, err := Contact(req)
	assert.NoError(t, err)
}

func TestContact_EmptyAfterSanitization(t *testing.T) {
	req := validRequest()
	req.Name = `<>'";`
	_, err := Contact(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty after sanitization")
}

func TestContact_SanitizesAllFields(t *testing.T) {
	req := validRequest()
	req.Name = `Jane <Doe>`
	req.Company = `Acme; DROP TABLE contacts`
	req.Message = `"hi" there`
	c, err := Contact(req)
	require.NoError(t, err)

	for _, v := range []string{c.Name, c.Company, c.Message} {
		assert.NotContains(t, v, "<")
		assert.NotContains(t, v, ">")
		assert.NotContains(t, v, ";")
		assert.NotContains(t, v, `"`)
		assert.NotContains(t, v, "'")
	}
}
