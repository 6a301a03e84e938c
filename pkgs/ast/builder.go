package ast

// Constructors for building expected trees in tests and callers that
// assemble commands by hand.

// Parsed creates the root node from pipelines
func Parsed(pipelines ...Pipeline) *ParsedCommand {
	if pipelines == nil {
		pipelines = []Pipeline{}
	}
	return &ParsedCommand{Pipelines: pipelines}
}

// Pipe creates a pipeline followed by op
func Pipe(op Operator, commands ...Command) Pipeline {
	return Pipeline{Commands: commands, Operator: op}
}

// Cmd creates a foreground command with literal word arguments
func Cmd(name string, args ...string) Command {
	return Command{Name: name, Args: Words(args...)}
}

// Words converts literal strings to Word arguments
func Words(values ...string) []Arg {
	if len(values) == 0 {
		return nil
	}
	args := make([]Arg, len(values))
	for i, v := range values {
		args[i] = Word(v)
	}
	return args
}

// Subst creates a command substitution argument
func Subst(command string) CommandSubstitution {
	return CommandSubstitution{Command: command}
}

// Braces creates a brace expansion argument
func Braces(values ...string) BraceExpansion {
	return BraceExpansion{Values: values}
}

// WithArgs returns a copy of c with extra arguments appended
func (c Command) WithArgs(args ...Arg) Command {
	c.Args = append(append([]Arg(nil), c.Args...), args...)
	return c
}

// WithRedirect returns a copy of c with a redirection appended
func (c Command) WithRedirect(r Redirection) Command {
	c.Redirections = append(append([]Redirection(nil), c.Redirections...), r)
	return c
}

// InBackground returns a copy of c marked to run in the background
func (c Command) InBackground() Command {
	c.Background = true
	return c
}

// InSubshell returns a copy of c marked as a subshell group
func (c Command) InSubshell() Command {
	c.Subshell = true
	return c
}
