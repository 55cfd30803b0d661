package showcase

import (
	"slices"
	"strings"

	"github.com/go-will/will/pkg/core"
	"github.com/go-will/will/pkg/dom"
)

// Task is one entry of the task list.
type Task struct {
	ID        int
	Text      string
	Completed bool
}

// TaskList owns the tasks and renders the entry form above them. Each task
// is keyed by its ID.
func TaskList(ctx *core.Context, _ core.Props) *core.VNode {
	tasks, setTasks := core.UseState(ctx, []Task(nil))
	_, setNextID := core.UseState(ctx, 1)

	add := func(text string) {
		id := setNextID.Value()
		setNextID.Set(id + 1)
		setTasks.Update(func(prev []Task) []Task {
			return append(slices.Clone(prev), Task{ID: id, Text: text})
		})
	}
	toggle := func(id int) {
		setTasks.Update(func(prev []Task) []Task {
			next := slices.Clone(prev)
			for i := range next {
				if next[i].ID == id {
					next[i].Completed = !next[i].Completed
				}
			}
			return next
		})
	}
	remove := func(id int) {
		setTasks.Update(func(prev []Task) []Task {
			return slices.DeleteFunc(slices.Clone(prev), func(t Task) bool { return t.ID == id })
		})
	}

	items := core.Map(tasks, func(t Task) *core.VNode {
		return core.C(TaskItem, core.Props{
			"key":      t.ID,
			"task":     t,
			"onToggle": toggle,
			"onDelete": remove,
		})
	})

	return core.H("div", nil,
		core.C(NewTaskForm, core.Props{"onAdd": add}),
		core.H("div", core.Props{"class": "tasks"}, items...),
	)
}

// TaskItem renders one task with a completion checkbox and a delete button.
func TaskItem(_ *core.Context, props core.Props) *core.VNode {
	task := core.Prop[Task](props, "task")
	onToggle := core.Prop[func(int)](props, "onToggle")
	onDelete := core.Prop[func(int)](props, "onDelete")

	decoration := "none"
	if task.Completed {
		decoration = "line-through"
	}
	return core.H("div", core.Props{"style": "text-decoration: " + decoration},
		core.H("input", core.Props{
			"type":     "checkbox",
			"checked":  task.Completed,
			"onChange": func() { onToggle(task.ID) },
		}),
		core.Text(task.Text),
		core.H("button", core.Props{
			"onClick": func() { onDelete(task.ID) },
			"style":   "margin-left: 10px;",
		}, core.Text("Delete")),
	)
}

// NewTaskForm holds the text of the task being typed and hands it to the
// onAdd prop on submit. Blank input is ignored.
func NewTaskForm(ctx *core.Context, props core.Props) *core.VNode {
	value, setValue := core.UseState(ctx, "")
	onAdd := core.Prop[func(string)](props, "onAdd")

	submit := func(ev *dom.Event) {
		ev.PreventDefault()
		text := strings.TrimSpace(setValue.Value())
		if text == "" {
			return
		}
		onAdd(text)
		setValue.Set("")
	}

	return core.H("form", core.Props{"id": "task-form", "onSubmit": submit},
		core.H("input", core.Props{
			"id":          "task-input",
			"type":        "text",
			"value":       value,
			"placeholder": "Enter a task",
			"onInput":     func(ev *dom.Event) { setValue.Set(ev.Value()) },
		}),
		core.H("button", core.Props{"type": "submit"}, core.Text("Add Task")),
	)
}
