package cxast

import "testing"

// recordingVisitor records the nodes it sees in pre-order, the way a
// future binder pass walking expressions would.
type recordingVisitor struct {
	visited []Node
}

func (r *recordingVisitor) PreVisit(n Node) bool {
	r.visited = append(r.visited, n)
	return true
}

func (r *recordingVisitor) PostVisit(Node) {}

func TestLambdaExpressionAcceptWalksCapturesParametersAndBody(t *testing.T) {
	capture := &LambdaCapture{HasAmper: true, AmperToken: 1, Identifier: 2}
	param := &ParameterDeclaration{TypeSpecifierList: List[Specifier]{&SimpleSpecifier{SpecifierToken: 5}}}
	body := &CompoundStatement{}

	lambda := &LambdaExpression{
		Captures:              List[*LambdaCapture]{capture},
		HasDeclarator:         true,
		ParameterDeclarations: List[*ParameterDeclaration]{param},
		Statement:             body,
	}

	v := &recordingVisitor{}
	lambda.Accept(v)

	if len(v.visited) != 5 {
		t.Fatalf("want 5 visited nodes (lambda, capture, param, param's specifier, body), got %d", len(v.visited))
	}
	if v.visited[0] != Node(lambda) {
		t.Fatalf("first visited node should be the lambda itself")
	}
	if v.visited[1] != Node(capture) {
		t.Fatalf("second visited node should be the capture")
	}
	if v.visited[2] != Node(param) {
		t.Fatalf("third visited node should be the parameter")
	}
	if v.visited[4] != Node(body) {
		t.Fatalf("fifth visited node should be the body")
	}
}

func TestLambdaExpressionIsExpression(t *testing.T) {
	var _ Expression = (*LambdaExpression)(nil)
}

func TestDesignatedInitializerAcceptWalksDesignatorsAndInitializer(t *testing.T) {
	dot := &DotBracketDesignator{Kind: DesignatorDot, DotToken: 0, Identifier: 1}
	bracket := &DotBracketDesignator{Kind: DesignatorBracket, Expression: &NumericLiteralExpr{Literal: 3}}
	init := &NumericLiteralExpr{Literal: 5}

	di := &DesignatedInitializer{
		DesignatorList: List[Designator]{dot, bracket},
		EqualToken:     4,
		Initializer:    init,
	}

	v := &recordingVisitor{}
	di.Accept(v)

	// di, dot, bracket, bracket's index expression, init
	if len(v.visited) != 5 {
		t.Fatalf("want 5 visited nodes, got %d", len(v.visited))
	}
}

func TestBracedInitializerAcceptWalksExpressionList(t *testing.T) {
	elems := List[Expression]{
		&DesignatedInitializer{
			DesignatorList: List[Designator]{&DotBracketDesignator{Kind: DesignatorDot, Identifier: 1}},
			Initializer:    &NumericLiteralExpr{Literal: 2},
		},
		&NumericLiteralExpr{Literal: 9},
	}
	braced := &BracedInitializer{ExpressionList: elems}

	v := &recordingVisitor{}
	braced.Accept(v)

	if len(v.visited) != 5 {
		t.Fatalf("want 5 visited nodes (braced, designated-initializer, designator, its initializer, trailing literal), got %d", len(v.visited))
	}
}

func TestDesignatorIsDesignator(t *testing.T) {
	var _ Designator = (*DotBracketDesignator)(nil)
}
