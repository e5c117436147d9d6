package codefmt

import "go/ast"

// cloneExpr copies the composite nodes of a type expression so that
// rewriting its children does not modify the original tree. Identifiers,
// selectors, and literals are shared, because type information is looked up
// by their pointers.
func cloneExpr(expr ast.Expr) ast.Expr {
	switch x := expr.(type) {
	case nil:
		return nil
	case *ast.ParenExpr:
		c := *x
		c.X = cloneExpr(x.X)
		return &c
	case *ast.StarExpr:
		c := *x
		c.X = cloneExpr(x.X)
		return &c
	case *ast.UnaryExpr:
		c := *x
		c.X = cloneExpr(x.X)
		return &c
	case *ast.BinaryExpr:
		c := *x
		c.X = cloneExpr(x.X)
		c.Y = cloneExpr(x.Y)
		return &c
	case *ast.ArrayType:
		c := *x
		c.Len = cloneExpr(x.Len)
		c.Elt = cloneExpr(x.Elt)
		return &c
	case *ast.MapType:
		c := *x
		c.Key = cloneExpr(x.Key)
		c.Value = cloneExpr(x.Value)
		return &c
	case *ast.ChanType:
		c := *x
		c.Value = cloneExpr(x.Value)
		return &c
	case *ast.Ellipsis:
		c := *x
		c.Elt = cloneExpr(x.Elt)
		return &c
	case *ast.IndexExpr:
		c := *x
		c.X = cloneExpr(x.X)
		c.Index = cloneExpr(x.Index)
		return &c
	case *ast.IndexListExpr:
		c := *x
		c.X = cloneExpr(x.X)
		c.Indices = make([]ast.Expr, len(x.Indices))
		for i, index := range x.Indices {
			c.Indices[i] = cloneExpr(index)
		}
		return &c
	case *ast.FuncType:
		c := *x
		c.TypeParams = cloneFieldList(x.TypeParams)
		c.Params = cloneFieldList(x.Params)
		c.Results = cloneFieldList(x.Results)
		return &c
	case *ast.StructType:
		c := *x
		c.Fields = cloneFieldList(x.Fields)
		return &c
	case *ast.InterfaceType:
		c := *x
		c.Methods = cloneFieldList(x.Methods)
		return &c
	}
	return expr
}

func cloneFieldList(list *ast.FieldList) *ast.FieldList {
	if list == nil {
		return nil
	}
	c := *list
	c.List = make([]*ast.Field, len(list.List))
	for i, field := range list.List {
		f := *field
		f.Type = cloneExpr(field.Type)
		c.List[i] = &f
	}
	return &c
}
