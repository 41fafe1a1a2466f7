package commands

var (
	registry = make(map[string]Command)
	order    []string
)

// Register регистрира команда
func Register(cmd Command) {
	if _, exists := registry[cmd.Name]; !exists {
		order = append(order, cmd.Name)
	}
	registry[cmd.Name] = cmd
}

// Find намира команда по име
func Find(name string) *Command {
	if cmd, ok := registry[name]; ok {
		return &cmd
	}
	return nil
}

// List returns all registered commands in registration order
func List() []Command {
	commands := make([]Command, 0, len(order))
	for _, name := range order {
		commands = append(commands, registry[name])
	}
	return commands
}

