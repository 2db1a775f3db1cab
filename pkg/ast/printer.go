package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const treeIndent = "| "

// PrintTree writes an indented rendering of node, one child per line.
func PrintTree(w io.Writer, node Node) error {
	p := &treePrinter{w: w}
	p.node(node, 0)
	return p.err
}

// TreeString renders node with PrintTree into a string.
func TreeString(node Node) string {
	var b strings.Builder
	_ = PrintTree(&b, node)
	return b.String()
}

type treePrinter struct {
	w   io.Writer
	err error
}

func (p *treePrinter) line(depth int, text string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat(treeIndent, depth), text)
}

func (p *treePrinter) node(node Node, depth int) {
	switch n := node.(type) {
	case nil:
		return
	case *Instructions:
		for _, child := range n.Nodes {
			p.node(child, depth)
		}
	case *Block:
		p.line(depth, "BLOCK")
		p.node(n.Content, depth+1)
	case *IfStatement:
		p.line(depth, "IF")
		p.node(n.Condition, depth+1)
		p.line(depth, "THEN")
		p.node(n.Body, depth+1)
		if n.ElseBody != nil {
			p.line(depth, "ELSE")
			p.node(n.ElseBody, depth+1)
		}
	case *WhileLoop:
		p.line(depth, "WHILE")
		p.node(n.Condition, depth+1)
		p.node(n.Body, depth+1)
	case *ForLoop:
		p.line(depth, "FOR")
		p.node(n.Iterator, depth+1)
		p.node(n.Range, depth+1)
		p.node(n.Body, depth+1)
	case *Range:
		p.line(depth, "RANGE")
		p.node(n.Start, depth+1)
		p.node(n.End, depth+1)
	case *FlowKeyword:
		p.line(depth, strings.ToUpper(string(n.Keyword)))
	case *ReturnStatement:
		p.line(depth, "RETURN")
		p.node(n.Value, depth+1)
	case *PrintStatement:
		p.line(depth, "PRINT")
		for _, arg := range n.Arguments {
			p.node(arg, depth+1)
		}
	case *Assignment:
		p.line(depth, string(n.Operator))
		p.node(n.Left, depth+1)
		p.node(n.Right, depth+1)
	case *Variable:
		p.line(depth, n.Name)
	case *Reference:
		p.line(depth, "REF")
		p.node(n.Container, depth+1)
		for _, c := range n.Coords {
			p.node(c, depth+1)
		}
	case *VectorLiteral:
		p.line(depth, "VECTOR")
		for _, el := range n.Elements {
			p.node(el, depth+1)
		}
	case *MatrixLiteral:
		p.line(depth, "MATRIX")
		for _, row := range n.Rows {
			p.node(row, depth+1)
		}
	case *IntLiteral:
		p.line(depth, strconv.FormatInt(n.Value, 10))
	case *FloatLiteral:
		p.line(depth, strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *StringLiteral:
		p.line(depth, strconv.Quote(n.Value))
	case *ArithmeticOperation:
		p.line(depth, n.Operator)
		p.node(n.Left, depth+1)
		p.node(n.Right, depth+1)
	case *Comparison:
		p.line(depth, n.Operator)
		p.node(n.Left, depth+1)
		p.node(n.Right, depth+1)
	case *UnaryExpression:
		p.line(depth, string(n.Operator))
		p.node(n.Operand, depth+1)
	case *FunctionCall:
		p.line(depth, "FUNCALL")
		p.line(depth+1, n.Name)
		for _, arg := range n.Arguments {
			p.node(arg, depth+1)
		}
	default:
		p.line(depth, fmt.Sprintf("<%s>", node.NodeType()))
	}
}
