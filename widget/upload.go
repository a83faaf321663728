package widget

// FileUploadField remembers only the display name of the last picked file and
// hands the file itself to OnFileSelect.
type FileUploadField[F any] struct {
	Field
	OnFileSelect func(file F)

	fileName string
}

// Pick records name and forwards file.
func (u *FileUploadField[F]) Pick(name string, file F) {
	u.fileName = name
	if u.OnFileSelect != nil {
		u.OnFileSelect(file)
	}
}

// FileName is the last picked name, or empty.
func (u *FileUploadField[F]) FileName() string { return u.fileName }
