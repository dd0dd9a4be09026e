package routes

import "fmt"

func MakeMembersLink(rctx RequestContext) string {
	return fmt.Sprintf("%s/v1/members", rctx.BaseURL())
}

func MakeSubwayLinesLink(rctx RequestContext) string {
	return fmt.Sprintf("%s/v1/subway-lines", rctx.BaseURL())
}

func MakeComplaintMessagesLink(rctx RequestContext) string {
	return fmt.Sprintf("%s/v1/complaints/messages", rctx.BaseURL())
}
