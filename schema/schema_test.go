package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string  `json:"name" validate:"min=1,max=5"`
	Count    int     `json:"count" validate:"min=1,max=3"`
	Price    float64 `json:"price" validate:"gt=0,money"`
	Email    *string `json:"email,omitempty" validate:"omitnil,email"`
	Document *string `json:"document,omitempty" validate:"omitnil,document_digits,tax_id"`
	Enabled  bool    `json:"enabled"`
}

var sampleSchema = New(
	String("name").Required().Trim(),
	Integer("count").Default(2),
	Number("price").Required(),
	String("email").Trim().Lower(),
	String("document").DigitsOnly(),
	Bool("enabled").Default(false),
)

func TestDecodeNormalizesAndDefaults(t *testing.T) {
	var out sample
	issues := sampleSchema.Decode(map[string]any{
		"name":     "  abc ",
		"price":    json.Number("9.90"),
		"email":    " John@Example.COM ",
		"document": "529.982.247-25",
		"unknown":  "dropped",
	}, &out)
	require.Empty(t, issues)

	assert.Equal(t, "abc", out.Name)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, 9.9, out.Price)
	require.NotNil(t, out.Email)
	assert.Equal(t, "john@example.com", *out.Email)
	require.NotNil(t, out.Document)
	assert.Equal(t, "52998224725", *out.Document)
	assert.False(t, out.Enabled)
}

func TestDecodeDefaultOnlyWhenAbsent(t *testing.T) {
	var out sample
	issues := sampleSchema.Decode(map[string]any{
		"name":  "abc",
		"price": 1,
		"count": 0,
	}, &out)
	require.Len(t, issues, 1)
	assert.Equal(t, Issue{Path: "count", Code: CodeOutOfRange, Message: "must be at least 1"}, issues[0])
}

func TestDecodeNullOnOptionalFieldIsAbsent(t *testing.T) {
	var out sample
	issues := sampleSchema.Decode(map[string]any{
		"name":     "abc",
		"price":    1,
		"email":    nil,
		"document": nil,
	}, &out)
	require.Empty(t, issues)
	assert.Equal(t, 2, out.Count)
	assert.Nil(t, out.Email)
	assert.Nil(t, out.Document)
}

func TestDecodeNullOnDefaultedFieldIsRejected(t *testing.T) {
	var out sample
	issues := sampleSchema.Decode(map[string]any{
		"name":    nil,
		"price":   1,
		"count":   nil,
		"enabled": nil,
	}, &out)
	require.Len(t, issues, 3)
	assert.Equal(t, Issue{Path: "name", Code: CodeRequired, Message: "is required"}, issues[0])
	assert.Equal(t, Issue{Path: "count", Code: CodeInvalidFormat, Message: "must be an integer, not null"}, issues[1])
	assert.Equal(t, Issue{Path: "enabled", Code: CodeInvalidFormat, Message: "must be a boolean, not null"}, issues[2])
}

func TestDecodeCollectsEveryFailureInDeclarationOrder(t *testing.T) {
	var out sample
	issues := sampleSchema.Decode(map[string]any{
		"document": "000.000.000-00",
		"email":    "not-an-email",
		"price":    10.123,
		"count":    1.5,
		"name":     "",
	}, &out)

	require.Len(t, issues, 5)
	assert.Equal(t, "name", issues[0].Path)
	assert.Equal(t, CodeInvalidFormat, issues[0].Code)
	assert.Equal(t, "count", issues[1].Path)
	assert.Equal(t, CodeInvalidFormat, issues[1].Code)
	assert.Equal(t, "price", issues[2].Path)
	assert.Equal(t, CodePrecision, issues[2].Code)
	assert.Equal(t, "email", issues[3].Path)
	assert.Equal(t, CodeInvalidFormat, issues[3].Code)
	assert.Equal(t, "document", issues[4].Path)
	assert.Equal(t, CodeInvalidChecksum, issues[4].Code)
}

func TestDecodeRequiredAndTypeIssuesAreNotRepeated(t *testing.T) {
	var out sample
	issues := sampleSchema.Decode(map[string]any{
		"name":  42,
		"price": "10",
	}, &out)

	require.Len(t, issues, 2)
	assert.Equal(t, Issue{Path: "name", Code: CodeInvalidFormat, Message: "must be a string"}, issues[0])
	assert.Equal(t, Issue{Path: "price", Code: CodeInvalidFormat, Message: "must be a number"}, issues[1])

	issues = sampleSchema.Decode(map[string]any{}, &out)
	require.Len(t, issues, 2)
	assert.Equal(t, CodeRequired, issues[0].Code)
	assert.Equal(t, CodeRequired, issues[1].Code)
}

func TestDecodeMergesExtraIssues(t *testing.T) {
	var out sample
	issues := sampleSchema.Decode(map[string]any{
		"name":  "abc",
		"price": 1,
		"email": "bad",
	}, &out, Issue{Path: "name", Code: CodeInvalidFormat, Message: "taken"})

	require.Len(t, issues, 2)
	assert.Equal(t, "name", issues[0].Path)
	assert.Equal(t, "taken", issues[0].Message)
	assert.Equal(t, "email", issues[1].Path)
}

func TestIntegerCoercion(t *testing.T) {
	f := Integer("n")
	for _, in := range []any{3, int64(3), 3.0, json.Number("3"), uint8(3)} {
		v, ok, issue := f.normalize(map[string]any{"n": in})
		require.Nil(t, issue, "%#v", in)
		require.True(t, ok)
		assert.Equal(t, 3, v)
	}
	for _, in := range []any{3.5, "3", json.Number("x"), true} {
		_, _, issue := f.normalize(map[string]any{"n": in})
		require.NotNil(t, issue, "%#v", in)
		assert.Equal(t, CodeInvalidFormat, issue.Code)
	}
}

func TestHasCentsPrecision(t *testing.T) {
	for _, v := range []float64{1, 10.5, 10.55, 0.01, 1000000, -5.25} {
		assert.True(t, HasCentsPrecision(v), v)
	}
	for _, v := range []float64{100.503, 0.001, 0.1 + 0.2} {
		assert.False(t, HasCentsPrecision(v), v)
	}
}

func TestIssuesHas(t *testing.T) {
	issues := Issues{{Path: "metadata.key"}, {Path: "amount"}}
	assert.True(t, issues.Has("metadata"))
	assert.True(t, issues.Has("amount"))
	assert.False(t, issues.Has("orderId"))
	assert.Equal(t, "metadata.key: ; amount: ", issues.String())
}
