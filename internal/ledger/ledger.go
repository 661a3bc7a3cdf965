// Package ledger maintains the registrar at <migrations>/lib.go: an
// ordered, append-only list of create modules consumed by a downstream
// apply step.
package ledger

import (
	"fmt"
	"os"
	"strings"

	"github.com/schemaforge/schemaforge/internal/paths"
)

const modulesAnchor = "// Modules:"
const registryClose = "\n\t}\n}"

const skeleton = `package migrations

import "github.com/schemaforge/schemaforge/pkg/ddl"

// Modules:
// %s

// Registry lists every create migration in generation order.
func Registry() []ddl.Migration {
	return []ddl.Migration{
		%s{},
	}
}
`

// Insert registers a create module. Inserting a module that is already
// referenced is a no-op, leaving the file byte-identical. A missing
// registrar is bootstrapped with the module as its only member.
func Insert(migrationsDir, moduleName string) error {
	lib := paths.LibFile(migrationsDir)
	modLine := "// " + moduleName
	entryLine := "\t\t" + moduleName + "{},"

	existing, err := os.ReadFile(lib)
	if os.IsNotExist(err) {
		content := fmt.Sprintf(skeleton, moduleName, moduleName)
		if err := os.WriteFile(lib, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write registrar %s: %w", lib, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read registrar %s: %w", lib, err)
	}

	content := string(existing)
	if strings.Contains(content, modLine+"\n") {
		return nil
	}
	if !strings.Contains(content, modulesAnchor) || !strings.Contains(content, registryClose) {
		return fmt.Errorf("registrar %s: structural anchors missing", lib)
	}

	content = strings.Replace(content, modulesAnchor, modulesAnchor+"\n"+modLine, 1)
	content = strings.Replace(content, registryClose, "\n"+entryLine+registryClose, 1)

	if err := os.WriteFile(lib, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write registrar %s: %w", lib, err)
	}
	return nil
}
