package event

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateEventRequest {
	return CreateEventRequest{
		Name:      "Finals",
		StartDate: "2025-06-01T00:00:00Z",
		EndDate:   "2025-06-01T03:00:00Z",
		Location:  "Arena",
	}
}

func TestParseDate_AcceptedLayouts(t *testing.T) {
	for _, raw := range []string{
		"2025-06-01T00:00:00Z",
		"2025-06-01T00:00:00.123Z",
		"2025-06-01T00:00:00+05:30",
		"2025-06-01T00:00:00",
		"2025-06-01 00:00:00",
		"2025-06-01",
	} {
		parsed, err := ParseDate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, 2025, parsed.Year())
		assert.Equal(t, time.June, parsed.Month())
	}
}

func TestParseDate_Rejects(t *testing.T) {
	for _, raw := range []string{"", "not-a-date", "01/06/2025", "2025-13-40"} {
		_, err := ParseDate(raw)
		assert.Error(t, err, raw)
	}
}

func TestCreateValidation_Valid(t *testing.T) {
	req := validCreateRequest()
	assert.NoError(t, binding.Validator.ValidateStruct(&req))
}

func TestCreateValidation_EmptyName(t *testing.T) {
	req := validCreateRequest()
	req.Name = ""

	err := binding.Validator.ValidateStruct(&req)
	require.Error(t, err)

	fields, ok := validationFields(err)
	require.True(t, ok)
	assert.Contains(t, fields, "name")
}

func TestCreateValidation_NegativeTicketsSold(t *testing.T) {
	req := validCreateRequest()
	req.TicketsSold = -1

	err := binding.Validator.ValidateStruct(&req)
	require.Error(t, err)

	fields, ok := validationFields(err)
	require.True(t, ok)
	assert.Equal(t, "must not be negative", fields["ticketsSold"])
}

func TestCreateValidation_CollectsEveryViolation(t *testing.T) {
	req := CreateEventRequest{
		Name:         "",
		StartDate:    "definitely not a date",
		EndDate:      "2025-06-01",
		Location:     "",
		Status:       "archived",
		TicketsSold:  -5,
		TotalRevenue: -1,
		ImageURL:     "not a url",
	}

	err := binding.Validator.ValidateStruct(&req)
	require.Error(t, err)

	fields, ok := validationFields(err)
	require.True(t, ok)
	for _, f := range []string{"name", "startDate", "location", "status", "ticketsSold", "totalRevenue", "imageUrl"} {
		assert.Contains(t, fields, f)
	}
	assert.NotContains(t, fields, "endDate")
	assert.Equal(t, "must be one of: draft, upcoming, ongoing, completed, cancelled", fields["status"])
}

func TestCreateValidation_EmptyURLIsUnsetSentinel(t *testing.T) {
	req := validCreateRequest()
	req.ImageURL = ""
	req.LogoURL = ""

	assert.NoError(t, binding.Validator.ValidateStruct(&req))
}

func TestCreateValidation_TeamsRequireName(t *testing.T) {
	req := validCreateRequest()
	req.Teams = []Team{{Name: "Tigers", Logo: "https://cdn.example.com/tigers.png"}, {Name: ""}}

	err := binding.Validator.ValidateStruct(&req)
	require.Error(t, err)

	fields, ok := validationFields(err)
	require.True(t, ok)
	assert.Contains(t, fields, "teams[1].name")
}

func TestUpdateValidation_AbsentFieldsAreSkipped(t *testing.T) {
	req := UpdateEventRequest{}
	assert.NoError(t, binding.Validator.ValidateStruct(&req))

	status := StatusUpcoming
	req.Status = &status
	assert.NoError(t, binding.Validator.ValidateStruct(&req))
}

func TestUpdateValidation_ExplicitValuesAreChecked(t *testing.T) {
	empty := ""
	negative := -1
	badStatus := "someday"
	req := UpdateEventRequest{
		Name:        &empty,
		TicketsSold: &negative,
		Status:      &badStatus,
	}

	err := binding.Validator.ValidateStruct(&req)
	require.Error(t, err)

	fields, ok := validationFields(err)
	require.True(t, ok)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "ticketsSold")
	assert.Contains(t, fields, "status")
}

func TestUpdateValidation_EmptyURLClears(t *testing.T) {
	empty := ""
	req := UpdateEventRequest{ImageURL: &empty, OrganizerLogo: &empty}
	assert.NoError(t, binding.Validator.ValidateStruct(&req))
}
