package schema_test

import (
	"testing"
	"time"

	"kore-landing-backend/internal/database/models"
	apperrors "kore-landing-backend/internal/errors"
	"kore-landing-backend/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type LeadSchemaTestSuite struct {
	suite.Suite
	validator *schema.Validator
}

func (suite *LeadSchemaTestSuite) SetupTest() {
	suite.validator = schema.NewValidator()
}

func validRequest() *schema.CreateLeadRequest {
	return &schema.CreateLeadRequest{
		Name:         "Ana Pérez",
		BusinessName: "Tienda Ana",
		Email:        "ana@example.com",
		Industry:     "Moda",
		Branches:     schema.Ptr(1),
	}
}

func (suite *LeadSchemaTestSuite) fieldErrors(err error) map[string]string {
	list, ok := apperrors.AsValidationErrors(err)
	require.True(suite.T(), ok, "expected validation errors, got %v", err)
	out := make(map[string]string, len(list))
	for _, fe := range list {
		out[fe.Field] = fe.Message
	}
	return out
}

func (suite *LeadSchemaTestSuite) TestParse_MinimalValid() {
	body := []byte(`{"name":"Ana Pérez","businessName":"Tienda Ana","email":"ana@example.com","industry":"Moda","branches":1}`)

	req, err := suite.validator.Parse(body)

	assert.NoError(suite.T(), err)
	require.NotNil(suite.T(), req)
	assert.Equal(suite.T(), "Ana Pérez", req.Name)
	assert.Equal(suite.T(), 1, *req.Branches)
	assert.Nil(suite.T(), req.Whatsapp)
	assert.Nil(suite.T(), req.Comment)
}

func (suite *LeadSchemaTestSuite) TestParse_AllOptionalFieldsPresent() {
	body := []byte(`{"name":"Ana","businessName":"Tienda","email":"ana@example.com","whatsapp":"+51 123 456 789","industry":"Moda","branches":3,"comment":"Tenemos tres locales"}`)

	req, err := suite.validator.Parse(body)

	assert.NoError(suite.T(), err)
	require.NotNil(suite.T(), req.Whatsapp)
	assert.Equal(suite.T(), "+51 123 456 789", *req.Whatsapp)
	require.NotNil(suite.T(), req.Comment)
	assert.Equal(suite.T(), "Tenemos tres locales", *req.Comment)
	assert.Equal(suite.T(), 3, *req.Branches)
}

func (suite *LeadSchemaTestSuite) TestParse_OptionalFieldsNullOrEmpty() {
	body := []byte(`{"name":"Ana","businessName":"Tienda","email":"ana@example.com","whatsapp":null,"industry":"Moda","branches":1,"comment":"   "}`)

	req, err := suite.validator.Parse(body)

	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), req.Whatsapp)
	assert.Nil(suite.T(), req.Comment)
}

func (suite *LeadSchemaTestSuite) TestParse_UnknownFieldsIgnored() {
	body := []byte(`{"name":"Ana","businessName":"Tienda","email":"ana@example.com","industry":"Moda","branches":1,"id":99,"createdAt":"2001-01-01T00:00:00Z"}`)

	_, err := suite.validator.Parse(body)

	assert.NoError(suite.T(), err)
}

func (suite *LeadSchemaTestSuite) TestParse_MalformedEmail() {
	body := []byte(`{"name":"Ana","businessName":"Tienda","email":"not-an-email","industry":"Moda","branches":1}`)

	_, err := suite.validator.Parse(body)

	assert.True(suite.T(), apperrors.IsValidation(err))
	assert.Equal(suite.T(), "invalid format", suite.fieldErrors(err)["email"])
	assert.Contains(suite.T(), err.Error(), "email: invalid format")
}

func (suite *LeadSchemaTestSuite) TestParse_BranchesZero() {
	body := []byte(`{"name":"Ana","businessName":"Tienda","email":"ana@example.com","industry":"Moda","branches":0}`)

	_, err := suite.validator.Parse(body)

	assert.Equal(suite.T(), "must be at least 1", suite.fieldErrors(err)["branches"])
}

func (suite *LeadSchemaTestSuite) TestParse_MissingRequiredFields() {
	_, err := suite.validator.Parse([]byte(`{}`))

	fields := suite.fieldErrors(err)
	for _, name := range []string{"name", "businessName", "email", "industry", "branches"} {
		assert.Equal(suite.T(), "required", fields[name], name)
	}
	assert.NotContains(suite.T(), fields, "whatsapp")
	assert.NotContains(suite.T(), fields, "comment")

	list, _ := apperrors.AsValidationErrors(err)
	assert.Equal(suite.T(), "name", list.First().Field)
}

func (suite *LeadSchemaTestSuite) TestParse_WrongTypes() {
	testCases := []struct {
		name    string
		body    string
		field   string
		message string
	}{
		{"branches as string", `{"name":"Ana","businessName":"T","email":"a@b.co","industry":"M","branches":"2"}`, "branches", "must be an integer"},
		{"branches as fraction", `{"name":"Ana","businessName":"T","email":"a@b.co","industry":"M","branches":1.5}`, "branches", "must be an integer"},
		{"name as number", `{"name":42,"businessName":"T","email":"a@b.co","industry":"M","branches":1}`, "name", "must be a string"},
		{"whatsapp as number", `{"name":"Ana","businessName":"T","email":"a@b.co","whatsapp":5,"industry":"M","branches":1}`, "whatsapp", "must be a string"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			_, err := suite.validator.Parse([]byte(tc.body))
			assert.Equal(suite.T(), tc.message, suite.fieldErrors(err)[tc.field])
		})
	}
}

func (suite *LeadSchemaTestSuite) TestParse_NotAnObject() {
	for _, body := range []string{`[]`, `"lead"`, `12`, `{"name":`, ``} {
		_, err := suite.validator.Parse([]byte(body))
		assert.True(suite.T(), apperrors.IsValidation(err), body)
		_, hasField := suite.fieldErrors(err)[""]
		assert.True(suite.T(), hasField, body)
	}
}

func (suite *LeadSchemaTestSuite) TestValidate_NormalizesWithoutMutatingInput() {
	req := validRequest()
	req.Name = "  <b>Ana</b> Pérez  "
	req.BusinessName = "Tienda & Co"
	req.Email = " ana@example.com "
	req.Whatsapp = schema.Ptr(" ")

	out, err := suite.validator.Validate(req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Ana Pérez", out.Name)
	assert.Equal(suite.T(), "Tienda & Co", out.BusinessName)
	assert.Equal(suite.T(), "ana@example.com", out.Email)
	assert.Nil(suite.T(), out.Whatsapp)

	assert.Equal(suite.T(), "  <b>Ana</b> Pérez  ", req.Name)
	assert.NotNil(suite.T(), req.Whatsapp)
	assert.NotSame(suite.T(), req.Branches, out.Branches)
}

func (suite *LeadSchemaTestSuite) TestValidate_MarkupOnlyNameIsRequired() {
	req := validRequest()
	req.Name = "<script>alert(1)</script>"

	_, err := suite.validator.Validate(req)

	assert.Equal(suite.T(), "required", suite.fieldErrors(err)["name"])
}

func (suite *LeadSchemaTestSuite) TestParse_EntityEncodedMarkupIsStripped() {
	body := []byte(`{"name":"Ana","businessName":"Tienda &lt;b&gt;Ana&lt;/b&gt;",` +
		`"email":"ana@example.com","industry":"Moda","branches":1,` +
		`"whatsapp":"&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;",` +
		`"comment":"&lt;script&gt;alert(1)&lt;/script&gt;"}`)

	out, err := suite.validator.Parse(body)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Tienda Ana", out.BusinessName)
	assert.Nil(suite.T(), out.Whatsapp)
	assert.Nil(suite.T(), out.Comment)
}

func (suite *LeadSchemaTestSuite) TestValidate_EntityEncodedMarkupOnlyIsRequired() {
	req := validRequest()
	req.BusinessName = "&lt;img src=x onerror=alert(1)&gt;"
	req.Industry = "&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;"

	_, err := suite.validator.Validate(req)

	fields := suite.fieldErrors(err)
	assert.Equal(suite.T(), "required", fields["businessName"])
	assert.Equal(suite.T(), "required", fields["industry"])
}

func (suite *LeadSchemaTestSuite) TestValidate_PlainAngleBracketsSurvive() {
	req := validRequest()
	req.Comment = schema.Ptr("precio < 100 & envío > 2 días")

	out, err := suite.validator.Validate(req)

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), out.Comment)
	assert.Equal(suite.T(), "precio < 100 & envío > 2 días", *out.Comment)
}

func (suite *LeadSchemaTestSuite) TestValidate_TooLong() {
	req := validRequest()
	long := make([]byte, 33)
	for i := range long {
		long[i] = '9'
	}
	req.Whatsapp = schema.Ptr(string(long))

	_, err := suite.validator.Validate(req)

	assert.Equal(suite.T(), "must be at most 32 characters", suite.fieldErrors(err)["whatsapp"])
}

func (suite *LeadSchemaTestSuite) TestValidate_Nil() {
	_, err := suite.validator.Validate(nil)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

func (suite *LeadSchemaTestSuite) TestValidateLead() {
	suite.Run("stored lead is valid", func() {
		lead := &models.Lead{
			ID:           1,
			Name:         "Ana",
			BusinessName: "Tienda",
			Email:        "ana@example.com",
			Industry:     "Moda",
			Branches:     2,
			CreatedAt:    time.Now(),
		}
		assert.NoError(suite.T(), suite.validator.ValidateLead(lead))
	})

	suite.Run("missing storage fields", func() {
		lead := &models.Lead{
			Name:         "Ana",
			BusinessName: "Tienda",
			Email:        "ana@example.com",
			Industry:     "Moda",
			Branches:     1,
		}
		fields := suite.fieldErrors(suite.validator.ValidateLead(lead))
		assert.Equal(suite.T(), "must be at least 1", fields["id"])
		assert.Equal(suite.T(), "required", fields["createdAt"])
	})

	suite.Run("invalid content", func() {
		lead := &models.Lead{ID: 3, Email: "bad", Branches: 0, CreatedAt: time.Now()}
		fields := suite.fieldErrors(suite.validator.ValidateLead(lead))
		assert.Equal(suite.T(), "invalid format", fields["email"])
		assert.Equal(suite.T(), "must be at least 1", fields["branches"])
	})

	suite.Run("nil lead", func() {
		assert.Error(suite.T(), suite.validator.ValidateLead(nil))
	})
}

func TestLeadSchemaTestSuite(t *testing.T) {
	suite.Run(t, new(LeadSchemaTestSuite))
}
