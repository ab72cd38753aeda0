// Package reader provides built-in assetkit readers.
//
// Importing the package declares readers for []byte (Raw) and string (Text).
// Clip and Mask declare their own readers. Structured documents are declared
// by the caller:
//
//	assetkit.Declare[LevelData, reader.JSON[LevelData]]()
//	assetkit.Declare[*Settings, reader.YAML[*Settings]]()
package reader
