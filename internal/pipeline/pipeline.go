package pipeline

// Pipeline is a fluent builder for an ordered task list.
type Pipeline struct{ tasks []Task }

// New creates an empty pipeline.
func New() *Pipeline { return &Pipeline{tasks: make([]Task, 0, 4)} }

// Add appends a task unconditionally.
func (p *Pipeline) Add(t Task) *Pipeline {
	p.tasks = append(p.tasks, t)
	return p
}

// AddIf appends a task only if cond is true.
func (p *Pipeline) AddIf(cond bool, t Task) *Pipeline {
	if cond {
		p.Add(t)
	}
	return p
}

// Build returns a copy of the task list.
func (p *Pipeline) Build() []Task {
	out := make([]Task, len(p.tasks))
	copy(out, p.tasks)
	return out
}

// Names lists the task names in run order.
func (p *Pipeline) Names() []TaskName {
	names := make([]TaskName, len(p.tasks))
	for i, t := range p.tasks {
		names[i] = t.Name()
	}
	return names
}
