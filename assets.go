package main

import _ "embed"

// defaultCatalog is the catalog shipped inside the binary. It is used when
// neither --catalog nor $TOOLSHUB_CATALOG names another file.
//
//go:embed catalog.yaml
var defaultCatalog []byte
