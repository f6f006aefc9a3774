package dataset

import (
	_ "embed"
)

//go:embed data/dataset.json
var embeddedDataset []byte

// LoadEmbedded 載入內嵌的預設資料集
func LoadEmbedded() (*Dataset, error) {
	return Load(embeddedDataset)
}
