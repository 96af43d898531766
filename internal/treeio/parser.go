package treeio

import (
	"fmt"
	"strings"

	"github.com/funvibe/jsc/internal/ast"
	"github.com/funvibe/jsc/internal/config"
	"github.com/funvibe/jsc/internal/modules"
)

// Parser reads tree dumps for the module loader.
type Parser struct{}

func (Parser) Parse(path string, data []byte, arena *ast.Arena) (*ast.Program, error) {
	if !strings.HasSuffix(path, config.TreeFileExt) && !strings.HasSuffix(path, ".tree.yml") {
		return nil, fmt.Errorf("%w %s: expected a %s tree dump", modules.ErrNoParser, path, config.TreeFileExt)
	}
	return Decode(path, data, arena)
}
