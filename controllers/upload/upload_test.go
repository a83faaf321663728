package uploadController_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"filings/models"
	"filings/routers"
	"filings/services/storage"
	"filings/session"
	"filings/testutil"
)

type recordingUploader struct {
	folders []string
}

func (u *recordingUploader) UploadFileDirect(_ context.Context, _ []byte, folder, fileName string) (string, error) {
	u.folders = append(u.folders, folder)
	return "https://files.example.com/" + folder + "/" + fileName, nil
}

func newTicket(t *testing.T, db *gorm.DB, owner models.User) uint {
	tk := models.Ticket{UserID: owner.ID, RegistrationType: "gst", Status: models.TicketDraft}
	require.NoError(t, db.Create(&tk).Error)
	return tk.ID
}

func TestUploadFolderFollowsSession(t *testing.T) {
	db := testutil.Setup(t)
	up := &recordingUploader{}
	storage.Default = up
	session.Default = session.NewMemoryStore(session.DefaultTTL)
	app := routers.NewApp(routers.Options{})

	user := testutil.CreateUser(t, db, "up@example.com", models.RoleUser)
	auth := testutil.Bearer(t, user)
	first := newTicket(t, db, user)
	second := newTicket(t, db, user)

	env := testutil.Multipart(t, app, "/upload", auth, nil, "scan.png", testutil.PNG)
	require.Equal(t, fiber.StatusOK, env.Code, env.Message)

	env = testutil.Multipart(t, app, fmt.Sprintf("/upload?ticketId=%d", first), auth, nil, "scan.png", testutil.PNG)
	require.Equal(t, fiber.StatusOK, env.Code, env.Message)

	require.NoError(t, session.Default.Save(context.Background(), user.ID, session.Flags{FillingOnBehalfTicketID: second}))
	env = testutil.Multipart(t, app, fmt.Sprintf("/upload?ticketId=%d", first), auth, nil, "scan.png", testutil.PNG)
	require.Equal(t, fiber.StatusOK, env.Code, env.Message)

	var body struct {
		S3URL string `json:"s3Url"`
	}
	env.Decode(t, &body)
	assert.Contains(t, body.S3URL, storage.TicketFolder(second)+"/")
	assert.Equal(t, []string{storage.TempFolder, storage.TicketFolder(first), storage.TicketFolder(second)}, up.folders)
}

func TestUploadChecksTicketAccess(t *testing.T) {
	db := testutil.Setup(t)
	up := &recordingUploader{}
	storage.Default = up
	session.Default = session.NewMemoryStore(session.DefaultTTL)
	app := routers.NewApp(routers.Options{})

	user := testutil.CreateUser(t, db, "up@example.com", models.RoleUser)
	other := testutil.CreateUser(t, db, "other@example.com", models.RoleUser)
	admin := testutil.CreateUser(t, db, "admin@example.com", models.RoleAdmin)
	theirs := newTicket(t, db, other)
	path := fmt.Sprintf("/upload?ticketId=%d", theirs)

	env := testutil.Multipart(t, app, path, testutil.Bearer(t, user), nil, "scan.png", testutil.PNG)
	assert.Equal(t, fiber.StatusForbidden, env.Code)

	require.NoError(t, session.Default.Save(context.Background(), user.ID, session.Flags{EditingTicketID: theirs}))
	env = testutil.Multipart(t, app, "/upload", testutil.Bearer(t, user), nil, "scan.png", testutil.PNG)
	assert.Equal(t, fiber.StatusForbidden, env.Code)

	env = testutil.Multipart(t, app, "/upload?ticketId=999", testutil.Bearer(t, other), nil, "scan.png", testutil.PNG)
	assert.Equal(t, fiber.StatusNotFound, env.Code)
	assert.Empty(t, up.folders)

	env = testutil.Multipart(t, app, path, testutil.Bearer(t, admin), nil, "scan.png", testutil.PNG)
	require.Equal(t, fiber.StatusOK, env.Code, env.Message)
	assert.Equal(t, []string{storage.TicketFolder(theirs)}, up.folders)
}

func TestUploadRequiresFile(t *testing.T) {
	db := testutil.Setup(t)
	app := routers.NewApp(routers.Options{})
	auth := testutil.Bearer(t, testutil.CreateUser(t, db, "up@example.com", models.RoleUser))

	env := testutil.Multipart(t, app, "/upload", auth, map[string]string{"note": "x"}, "", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, env.Code)
}
