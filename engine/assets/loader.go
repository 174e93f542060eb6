package assets

import "github.com/spaghettifunk/aurora/engine/renderer/metadata"

type Loader interface {
	Load(path string, params interface{}) (*metadata.Asset, error) // `interface{}` here allows loaders to take format-specific options
	Unload(*metadata.Asset) error
}
