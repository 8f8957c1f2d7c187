package update

import "github.com/sandeepkv93/zend/internal/views"

const helpMarkdown = `# Keys

| Key | Action |
|-----|--------|
| 1-5 | switch tab (all, pending, today, completed, overdue) |
| j/k | move selection |
| a   | add a reminder |
| x   | complete or reopen the selection |
| d   | delete the selection |
| /   | open the command palette |
| ?   | toggle this help |
| q   | quit |

# Commands

- ` + "`add <title>`" + ` quick-add due in one hour
- ` + "`show <tab>`" + ` switch tab
- ` + "`done <id>`" + ` complete by id or unique prefix
- ` + "`delete <id>`" + ` delete by id or unique prefix
- ` + "`name <name>`" + ` change your display name
`

func (m Model) renderHelp() string {
	return views.RenderMarkdown(helpMarkdown)
}
