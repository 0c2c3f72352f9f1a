package assets

import "errors"

// AssetResolver looks assets up in a custom directory first and falls back
// to the embedded set for anything the directory lacks.
type AssetResolver struct {
	layers []AssetLoader
}

// NewAssetResolver returns a resolver over customDir, which must be a
// readable directory, or over the embedded set alone when customDir is empty.
func NewAssetResolver(customDir string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customDir != "" {
		custom, err := NewFilesystemLoader(customDir)
		if err != nil {
			return nil, err
		}
		r.layers = append(r.layers, custom)
	}
	r.layers = append(r.layers, NewEmbeddedLoader())
	return r, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(name, AssetLoader.LoadStyle)
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(name, AssetLoader.LoadTemplate)
}

// first moves to the next layer only on not-found. Invalid names and read
// failures stop the lookup.
func (r *AssetResolver) first(name string, load func(AssetLoader, string) (string, error)) (string, error) {
	var err error
	for _, l := range r.layers {
		var content string
		if content, err = load(l, name); !isNotFound(err) {
			return content, err
		}
	}
	return "", err
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.layers) > 1
}

var _ AssetLoader = (*AssetResolver)(nil)
