package routes

import "fmt"

func MakeRedirectURLLink(rctx RequestContext) string {
	return fmt.Sprintf("%s/v1/auth/redirect-url", rctx.BaseURL())
}

func MakeLoginLink(rctx RequestContext) string {
	return fmt.Sprintf("%s/v1/auth/login", rctx.BaseURL())
}
