package typechecker

func (c *Checker) pushLoopContext() {
	c.loopDepth++
}

func (c *Checker) popLoopContext() {
	if c.loopDepth > 0 {
		c.loopDepth--
	}
}

func (c *Checker) inLoopContext() bool {
	return c.loopDepth > 0
}

// withScope checks body inside a child scope that is closed on return.
func (c *Checker) withScope(body func() []Diagnostic) []Diagnostic {
	c.scopes.CreateChild()
	defer c.scopes.ParentScope()
	return body()
}

// withLoop checks body with the loop counter raised.
func (c *Checker) withLoop(body func() []Diagnostic) []Diagnostic {
	c.pushLoopContext()
	defer c.popLoopContext()
	return body()
}
