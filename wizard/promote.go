package wizard

import (
	"context"
	"fmt"
)

// UploadFunc stores content and returns its remote URL.
type UploadFunc func(ctx context.Context, name, mime string, content []byte) (string, error)

// PromotePending uploads every pending file and replaces it with its remote
// URL. It stops at the first failure and returns fd unchanged.
func PromotePending(ctx context.Context, fd FormData, upload UploadFunc) (FormData, int, error) {
	next := fd.Clone()
	promoted := 0

	promote := func(ref FileRef) (FileRef, error) {
		if ref.Kind() != FilePending {
			return ref, nil
		}
		mime, content, err := ref.Content()
		if err != nil {
			return ref, err
		}
		url, err := upload(ctx, ref.Name, mime, content)
		if err != nil {
			return ref, err
		}
		promoted++
		return UploadedFile(ref.Name, url), nil
	}

	for key, vals := range next.Steps {
		for name, v := range vals {
			ref, ok := v.(FileRef)
			if !ok {
				continue
			}
			up, err := promote(ref)
			if err != nil {
				return fd, 0, fmt.Errorf("upload %s.%s: %w", key, name, err)
			}
			vals[name] = up
		}
	}
	for i := range next.Directors {
		d := &next.Directors[i]
		var err error
		if d.AadhaarCard, err = promote(d.AadhaarCard); err != nil {
			return fd, 0, fmt.Errorf("upload directors[%d].aadhaarCard: %w", i, err)
		}
		if d.PanCard, err = promote(d.PanCard); err != nil {
			return fd, 0, fmt.Errorf("upload directors[%d].panCard: %w", i, err)
		}
	}
	return next, promoted, nil
}
