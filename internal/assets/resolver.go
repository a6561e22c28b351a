package assets

import "errors"

// AssetResolver loads styles from a custom directory when one is set,
// falling back to the embedded styles for names the directory lacks.
type AssetResolver struct {
	custom   StyleLoader // nil without a custom path
	embedded StyleLoader
}

var _ StyleLoader = (*AssetResolver)(nil)

// NewAssetResolver creates an AssetResolver.
// An empty customBasePath uses embedded styles only.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}

	custom, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = custom
	return r, nil
}

// LoadStyle loads name from the custom directory, then from the embedded
// styles. Only ErrStyleNotFound triggers the fallback.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	css, err := r.custom.LoadStyle(name)
	if err == nil || !errors.Is(err, ErrStyleNotFound) {
		return css, err
	}
	return r.embedded.LoadStyle(name)
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}
