package cpp

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/viant/cmakegen/inspector/info"
	"golang.org/x/sync/errgroup"
)

const (
	entryPointName   = "main"
	defaultCacheSize = 1024
	defaultLimit     = 4
)

// Inspector detects translation units that define a global main function.
// Results are cached by content fingerprint.
type Inspector struct {
	cache *lru.Cache[uint64, bool]
	limit int
}

// NewInspector creates an inspector parsing at most limit files at once.
func NewInspector(limit int) (*Inspector, error) {
	cache, err := lru.New[uint64, bool](defaultCacheSize)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Inspector{cache: cache, limit: limit}, nil
}

// HasEntryPoint reports whether src defines main at file scope.
func (i *Inspector) HasEntryPoint(ctx context.Context, src []byte) (bool, error) {
	key, err := info.Hash(src)
	if err != nil {
		return false, err
	}
	if found, ok := i.cache.Get(key); ok {
		return found, nil
	}
	parser := sitter.NewParser()
	parser.SetLanguage(cpp.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return false, fmt.Errorf("failed to parse source: %w", err)
	}
	found := definesEntryPoint(tree.RootNode(), src)
	i.cache.Add(key, found)
	return found, nil
}

// InspectFile reports whether the file at location defines main.
func (i *Inspector) InspectFile(ctx context.Context, location string) (bool, error) {
	src, err := os.ReadFile(location)
	if err != nil {
		return false, fmt.Errorf("failed to read file %s: %w", location, err)
	}
	return i.HasEntryPoint(ctx, src)
}

// InspectFiles reports whether any of the files defines main. Files are
// parsed concurrently; the first hit cancels the rest.
func (i *Inspector) InspectFiles(ctx context.Context, locations []string) (bool, error) {
	var found atomic.Bool
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(i.limit)
	for _, location := range locations {
		if found.Load() {
			break
		}
		location := location
		group.Go(func() error {
			if found.Load() || ctx.Err() != nil {
				return nil
			}
			ok, err := i.InspectFile(ctx, location)
			if err != nil {
				return err
			}
			if ok {
				found.Store(true)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil && !found.Load() {
		return false, err
	}
	return found.Load(), nil
}

// InspectProject marks every directory of the tree whose source files define
// main.
func (i *Inspector) InspectProject(ctx context.Context, root *info.Directory) error {
	var err error
	root.Walk(func(dir *info.Directory) bool {
		if err != nil {
			return false
		}
		dir.HasEntryPoint, err = i.InspectFiles(ctx, dir.SourceFiles)
		return err == nil
	})
	return err
}

func definesEntryPoint(node *sitter.Node, src []byte) bool {
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		switch {
		case child.Type() == "function_definition":
			if functionName(child, src) == entryPointName {
				return true
			}
		case child.Type() == "linkage_specification",
			child.Type() == "declaration_list",
			strings.HasPrefix(child.Type(), "preproc_if"),
			child.Type() == "preproc_else",
			child.Type() == "preproc_elif":
			if definesEntryPoint(child, src) {
				return true
			}
		}
	}
	return false
}

// functionName unwraps pointer and reference declarators down to the
// function declarator and returns its plain identifier.
func functionName(definition *sitter.Node, src []byte) string {
	declarator := definition.ChildByFieldName("declarator")
	for declarator != nil && declarator.Type() != "function_declarator" {
		declarator = declarator.ChildByFieldName("declarator")
	}
	if declarator == nil {
		return ""
	}
	name := declarator.ChildByFieldName("declarator")
	if name == nil || name.Type() != "identifier" {
		return ""
	}
	return name.Content(src)
}
