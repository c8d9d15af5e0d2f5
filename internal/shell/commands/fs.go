package commands

import (
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/output"
	"github.com/Necromancer-Labs/voidshell/internal/session"
	"github.com/Necromancer-Labs/voidshell/internal/ui/theme"
	"github.com/Necromancer-Labs/voidshell/internal/vfs"
)

func isImage(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".png", ".svg", ".jpg":
		return true
	}
	return false
}

func nameStyle(name string, n *vfs.Node) lipgloss.Style {
	switch {
	case n.IsDir():
		return theme.DirStyle
	case isImage(name):
		return theme.ImageStyle
	default:
		return theme.FileStyle
	}
}

func (c *Commands) ls(args []string, t i18n.Func, ctx session.Context) output.Renderable {
	dir := ctx.Path()
	if len(args) > 0 {
		dir = ctx.Resolve(args[0])
	}
	node, ok := ctx.Lookup(dir)
	if !ok || !node.IsDir() {
		return errText(t("cat_no_such_file", i18n.Params{"filename": dir}))
	}

	return output.Func(func(w int) string {
		names := node.Names()
		cells := make([]output.Cell, len(names))
		for i, name := range names {
			child, _ := node.Child(name)
			cells[i] = output.Cell{Text: name, Style: nameStyle(name, child)}
		}
		return output.Grid{Cells: cells}.Render(w)
	})
}

func (c *Commands) cd(args []string, t i18n.Func, ctx session.Context) output.Renderable {
	target := c.deps.Home
	if len(args) > 0 {
		target = args[0]
	}
	dir := ctx.Resolve(target)
	if node, ok := ctx.Lookup(dir); ok && node.IsDir() {
		ctx.SetPath(dir)
		return nil
	}
	return errText(t("cd_no_such_directory", i18n.Params{"directory": target}))
}

func (c *Commands) pwd(_ []string, _ i18n.Func, ctx session.Context) output.Renderable {
	return plain(ctx.Path())
}

func (c *Commands) cat(args []string, t i18n.Func, ctx session.Context) output.Renderable {
	if len(args) == 0 {
		return errText(t("cat_missing_operand", nil))
	}
	name := args[0]
	node, ok := ctx.Lookup(name)
	if !ok || !node.IsFile() {
		return errText(t("cat_no_such_file", i18n.Params{"filename": name}))
	}

	ref := node.Ref()
	switch ref.Kind {
	case vfs.RefKey:
		return c.mdKey(t, ref.Value)
	case vfs.RefProject:
		return c.projectCard(t, ref.Value)
	case vfs.RefImage:
		return muted(t(ref.Value, nil))
	case vfs.RefEncrypted:
		return errText(t("cat_encrypted", i18n.Params{"filename": name}))
	default:
		return plain(ref.Value)
	}
}

func (c *Commands) tree(args []string, t i18n.Func, ctx session.Context) output.Renderable {
	start := ctx.Path()
	if len(args) > 0 {
		start = ctx.Resolve(args[0])
	}
	node, ok := ctx.Lookup(start)
	if !ok || !node.IsDir() {
		return errText(t("cd_no_such_directory", i18n.Params{"directory": start}))
	}

	return output.Func(func(int) string {
		lines := []string{theme.DirStyle.Render(start)}
		walk(node, "", &lines)
		return strings.Join(lines, "\n")
	})
}

func walk(dir *vfs.Node, prefix string, lines *[]string) {
	names := dir.Names()
	for i, name := range names {
		child, _ := dir.Child(name)
		connector, indent := "├── ", "│   "
		if i == len(names)-1 {
			connector, indent = "└── ", "    "
		}
		*lines = append(*lines, prefix+connector+nameStyle(name, child).Render(name))
		if child.IsDir() {
			walk(child, prefix+indent, lines)
		}
	}
}
