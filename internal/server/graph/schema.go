package graph

import (
	"errors"

	"github.com/graphql-go/graphql"
	"github.com/sieke13/bookshelf/internal/common"
	"github.com/sieke13/bookshelf/internal/models"
	"github.com/sieke13/bookshelf/internal/server/auth"
	"github.com/sieke13/bookshelf/internal/server/users"
)

// authPayload is the login/addUser result: a signed token plus the user it
// identifies. JSON tags drive graphql-go's default field resolution.
type authPayload struct {
	Token string      `json:"token"`
	User  *users.User `json:"user"`
}

var bookType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Book",
	Fields: graphql.Fields{
		"bookId":      &graphql.Field{Type: graphql.String},
		"title":       &graphql.Field{Type: graphql.String},
		"authors":     &graphql.Field{Type: graphql.NewList(graphql.String)},
		"description": &graphql.Field{Type: graphql.String},
		"image":       &graphql.Field{Type: graphql.String},
		"link":        &graphql.Field{Type: graphql.String},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"_id":        &graphql.Field{Type: graphql.ID},
		"username":   &graphql.Field{Type: graphql.String},
		"email":      &graphql.Field{Type: graphql.String},
		"savedBooks": &graphql.Field{Type: graphql.NewList(bookType)},
	},
})

var authType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Auth",
	Fields: graphql.Fields{
		"token": &graphql.Field{Type: graphql.String},
		"user":  &graphql.Field{Type: userType},
	},
})

var bookInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "BookInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"bookId":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"authors":     &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"image":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"link":        &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

// NewSchema builds the executable schema over the users service.
func NewSchema(svc *users.Service) (graphql.Schema, error) {
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					claims, ok := auth.ClaimsFrom(p.Context)
					if !ok {
						// Anonymous: null, not an error.
						return nil, nil
					}
					user, err := svc.Me(p.Context, claims.UserID)
					if err != nil {
						if errors.Is(err, common.ErrorNotFound) {
							// Identity verified but the user vanished;
							// the original API answers null here too.
							return nil, nil
						}
						return nil, wrapError(err)
					}
					return user, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: authType,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					email, _ := p.Args["email"].(string)
					password, _ := p.Args["password"].(string)
					res, err := svc.Login(p.Context, email, password)
					if err != nil {
						return nil, wrapError(err)
					}
					return &authPayload{Token: res.Token, User: res.User}, nil
				},
			},
			"addUser": &graphql.Field{
				Type: authType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					username, _ := p.Args["username"].(string)
					email, _ := p.Args["email"].(string)
					password, _ := p.Args["password"].(string)
					res, err := svc.Register(p.Context, username, email, password)
					if err != nil {
						return nil, wrapError(err)
					}
					return &authPayload{Token: res.Token, User: res.User}, nil
				},
			},
			"saveBook": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"bookData": &graphql.ArgumentConfig{Type: graphql.NewNonNull(bookInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID := userIDFrom(p)
					book := decodeBookInput(p.Args["bookData"])
					user, err := svc.SaveBook(p.Context, userID, book)
					if err != nil {
						return nil, wrapError(err)
					}
					return user, nil
				},
			},
			"removeBook": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"bookId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID := userIDFrom(p)
					bookID, _ := p.Args["bookId"].(string)
					user, err := svc.RemoveBook(p.Context, userID, bookID)
					if err != nil {
						return nil, wrapError(err)
					}
					return user, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// userIDFrom returns the verified user ID or "" for anonymous callers; the
// service turns "" into an unauthenticated failure for mutations.
func userIDFrom(p graphql.ResolveParams) string {
	claims, ok := auth.ClaimsFrom(p.Context)
	if !ok {
		return ""
	}
	return claims.UserID
}

func decodeBookInput(arg interface{}) models.Book {
	data, _ := arg.(map[string]interface{})

	var book models.Book
	book.BookID, _ = data["bookId"].(string)
	book.Title, _ = data["title"].(string)
	book.Description, _ = data["description"].(string)
	book.Image, _ = data["image"].(string)
	book.Link, _ = data["link"].(string)

	if raw, ok := data["authors"].([]interface{}); ok {
		for _, a := range raw {
			if s, ok := a.(string); ok {
				book.Authors = append(book.Authors, s)
			}
		}
	}
	return book
}
