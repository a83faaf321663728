package registrationController_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	registrationController "filings/controllers/registration"
	"filings/models"
	"filings/routers"
	"filings/testutil"
	"filings/wizard"
)

func TestRegistrationDetails(t *testing.T) {
	testutil.Setup(t)
	app := routers.NewApp(routers.Options{})

	env := testutil.JSON(t, app, "GET", "/registrations/"+wizard.PrivateLimited, "", nil)
	require.Equal(t, fiber.StatusOK, env.Code, env.Message)

	var body struct {
		Tabs          []string `json:"tabs"`
		Documents     []string `json:"documents"`
		Prerequisites []string `json:"prerequisites"`
		Process       []struct {
			Step  string `json:"step"`
			Title string `json:"title"`
		} `json:"process"`
	}
	env.Decode(t, &body)
	assert.Equal(t, registrationController.Tabs, body.Tabs)
	assert.Len(t, body.Process, 5)
	assert.Contains(t, body.Documents, "Rent Agreement")
	assert.Contains(t, body.Documents, "PAN Card of each director")
	// Asked for only when the office is rented
	assert.NotContains(t, body.Prerequisites, "Rent Agreement")
	assert.Contains(t, body.Prerequisites, "Latest Electricity Bill")

	env = testutil.JSON(t, app, "GET", "/registrations/llama-farming", "", nil)
	assert.Equal(t, fiber.StatusNotFound, env.Code)
}

func TestPackages(t *testing.T) {
	testutil.Setup(t)
	app := routers.NewApp(routers.Options{})

	env := testutil.JSON(t, app, "GET", "/registrations/"+wizard.PrivateLimited+"/packages", "", nil)
	require.Equal(t, fiber.StatusOK, env.Code, env.Message)

	var body struct {
		Packages []models.Package `json:"packages"`
		Loading  bool             `json:"loading"`
	}
	env.Decode(t, &body)
	assert.False(t, body.Loading)
	require.Len(t, body.Packages, 3)
	assert.LessOrEqual(t, body.Packages[0].Price, body.Packages[1].Price)
	assert.NotEmpty(t, body.Packages[0].Features.Data())
}

func TestRegistrationForm(t *testing.T) {
	testutil.Setup(t)
	app := routers.NewApp(routers.Options{})

	env := testutil.JSON(t, app, "GET", "/registrations/"+wizard.GST+"/form", "", nil)
	require.Equal(t, fiber.StatusOK, env.Code, env.Message)

	var body struct {
		Schema         wizard.Schema     `json:"schema"`
		DirectorFields []wizard.FieldDef `json:"directorFields"`
		MaxDirectors   int               `json:"maxDirectors"`
	}
	env.Decode(t, &body)
	assert.Equal(t, wizard.GST, body.Schema.Key)
	assert.Equal(t, wizard.StepKey("step2"), body.Schema.DirectorsStep)
	assert.NotEmpty(t, body.DirectorFields)
	assert.Equal(t, wizard.MaxDirectors, body.MaxDirectors)
}
