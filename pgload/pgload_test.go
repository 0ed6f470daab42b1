package pgload

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chop-dbhi/typeprofiler/profile"
)

func TestSqlTypeMapsBareSemanticTypes(t *testing.T) {
	cases := []struct {
		semanticType string
		want         string
	}{
		{"Boolean", "boolean"},
		{"Long", "bigint"},
		{"Double", "double precision"},
		{"LocalDate", "date"},
		{"LocalTime", "time"},
		{"LocalDateTime", "timestamp"},
		{"ZonedDateTime", "timestamptz"},
		{"OffsetDateTime", "timestamptz"},
		{"String", "text"},
	}

	for _, c := range cases {
		f := &profile.Field{SemanticType: c.semanticType}
		assert.Equal(t, c.want, sqlType(f), "semantic type %s", c.semanticType)
	}
}

func TestSqlTypeSignedLongStaysBigint(t *testing.T) {
	f := &profile.Field{SemanticType: "Long", Qualifier: "SIGNED"}
	assert.Equal(t, "bigint", sqlType(f))
}

func TestSqlTypeZipQualifierFallsBackToText(t *testing.T) {
	f := &profile.Field{SemanticType: "Long", Qualifier: "ZIP"}
	assert.Equal(t, "text", sqlType(f))
}

func TestSqlTypeEmailQualifierFallsBackToText(t *testing.T) {
	f := &profile.Field{SemanticType: "String", Qualifier: "EMAIL"}
	assert.Equal(t, "text", sqlType(f))
}

func TestCleanFieldNameLowercasesAndCollapsesSeparators(t *testing.T) {
	assert.Equal(t, "patient_id", cleanFieldName("Patient ID"))
	assert.Equal(t, "date_of_birth", cleanFieldName("date--of..birth"))
	assert.Equal(t, "a_b", cleanFieldName("A!@#B"))
}

func TestNewSchemaDerivesFieldTypes(t *testing.T) {
	p := profile.NewProfile()
	p.Fields["zip"] = &profile.Field{SemanticType: "Long", Qualifier: "ZIP", Nullable: true}
	p.Fields["age"] = &profile.Field{SemanticType: "Long", Unique: true}

	s := NewSchema(p)

	assert.Equal(t, "text", s.Fields["zip"].Type)
	assert.True(t, s.Fields["zip"].Nullable)
	assert.Equal(t, "bigint", s.Fields["age"].Type)
	assert.True(t, s.Fields["age"].Unique)
}
