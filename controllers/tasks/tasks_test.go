package taskController_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	taskController "filings/controllers/tasks"
	"filings/models"
	"filings/routers"
	"filings/tasklist"
	"filings/testutil"
	"filings/wizard"
)

func TestTaskListEditing(t *testing.T) {
	db := testutil.Setup(t)
	app := routers.NewApp(routers.Options{})
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleUser)
	admin := testutil.CreateUser(t, db, "admin@example.com", models.RoleAdmin)

	s, _ := wizard.Lookup(wizard.GST)
	ticket, err := models.NewDraftTicket(owner.ID, s, 0)
	require.NoError(t, err)
	require.NoError(t, db.Create(&ticket).Error)

	base := fmt.Sprintf("/tickets/%d/tasks", ticket.ID)
	adminAuth := testutil.Bearer(t, admin)
	ownerAuth := testutil.Bearer(t, owner)

	var body struct {
		Tasks []tasklist.Task `json:"tasks"`
	}

	env := testutil.JSON(t, app, "POST", base, adminAuth, fiber.Map{"title": "Collect PAN"})
	require.Equal(t, fiber.StatusOK, env.Code, env.Message)
	env = testutil.JSON(t, app, "POST", base, adminAuth, fiber.Map{"title": "File REG-01", "status": "IN_PROGRESS"})
	require.Equal(t, fiber.StatusOK, env.Code, env.Message)
	env.Decode(t, &body)
	require.Len(t, body.Tasks, 2)
	assert.Equal(t, tasklist.StatusPending, body.Tasks[0].Status)
	first, second := body.Tasks[0].ID, body.Tasks[1].ID

	env = testutil.JSON(t, app, "PATCH", base+"/"+first, adminAuth, fiber.Map{"status": "DONE"})
	require.Equal(t, fiber.StatusOK, env.Code, env.Message)

	env = testutil.JSON(t, app, "DELETE", base+"/"+second, adminAuth, nil)
	require.Equal(t, fiber.StatusOK, env.Code, env.Message)

	env = testutil.JSON(t, app, "DELETE", base+"/missing", adminAuth, nil)
	assert.Equal(t, fiber.StatusNotFound, env.Code)

	// Customers read their list but cannot change it
	env = testutil.JSON(t, app, "POST", base, ownerAuth, fiber.Map{"title": "Sneaky"})
	assert.Equal(t, fiber.StatusForbidden, env.Code)

	env = testutil.JSON(t, app, "GET", base, ownerAuth, nil)
	require.Equal(t, fiber.StatusOK, env.Code, env.Message)
	env.Decode(t, &body)
	require.Len(t, body.Tasks, 1)
	assert.Equal(t, first, body.Tasks[0].ID)
	assert.Equal(t, tasklist.StatusDone, body.Tasks[0].Status)
}

func TestSaveTaskListReplacesRows(t *testing.T) {
	db := testutil.Setup(t)

	list := tasklist.Add(nil, tasklist.Task{Title: "a"})
	list = tasklist.Add(list, tasklist.Task{Title: "b"})
	require.NoError(t, taskController.SaveTasks(db, 7, list))

	list, err := tasklist.Delete(list, list[0].ID)
	require.NoError(t, err)
	require.NoError(t, taskController.SaveTasks(db, 7, list))

	got, err := taskController.LoadTasks(db, 7)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Title)

	var rows int64
	db.Unscoped().Model(&models.TicketTask{}).Count(&rows)
	assert.EqualValues(t, 1, rows)
}
