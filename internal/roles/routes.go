package roles

// Page names a screen of the client.
type Page string

const (
	PageLoading  Page = "loading"
	PageNotFound Page = "not-found"

	PageMain         Page = "main"
	PageSignin       Page = "signin"
	PageAdminSignin  Page = "admin-signin"
	PageSadminSignin Page = "sadmin-signin"
	PageSignup       Page = "signup"

	PageRegister Page = "register"
	PageProfile  Page = "profile"

	PageEditEvent       Page = "edit-event"
	PageAdminRegistered Page = "admin-registered"
	PageAdminProfile    Page = "admin-profile"

	PageCreateAdminEvent Page = "create-admin-event"
	PageAdminEvents      Page = "admin-events"
	PageUserRegistered   Page = "user-registered"
	PageSadminProfile    Page = "sadmin-profile"
)

type Route struct {
	Path string
	Page Page
}

// Tree is the set of routes mounted for one role.
type Tree struct {
	Role   Role
	Layout string
	Routes []Route
}

// RouteTree selects the route tree for role. The trees of the four resolved
// roles share only the index route.
func RouteTree(role Role) Tree {
	switch role {
	case Anonymous:
		return Tree{Role: role, Layout: "landing", Routes: []Route{
			{"/", PageMain},
			{"/signin", PageSignin},
			{"/admin-signin", PageAdminSignin},
			{"/sadmin-signin", PageSadminSignin},
			{"/signup", PageSignup},
		}}
	case Participant:
		return Tree{Role: role, Layout: "user", Routes: []Route{
			{"/", PageMain},
			{"/register", PageRegister},
			{"/profile", PageProfile},
		}}
	case EventAdmin:
		return Tree{Role: role, Layout: "admin", Routes: []Route{
			{"/", PageMain},
			{"/admin/event", PageEditEvent},
			{"/admin/registered", PageAdminRegistered},
			{"/admin/profile", PageAdminProfile},
		}}
	case SuperAdmin:
		return Tree{Role: role, Layout: "superadmin", Routes: []Route{
			{"/", PageMain},
			{"/superadmin/create-admin-event", PageCreateAdminEvent},
			{"/superadmin/details-event-admin", PageAdminEvents},
			{"/superadmin/registered", PageUserRegistered},
			{"/superadmin/profile", PageSadminProfile},
		}}
	}
	return Tree{Role: Unknown, Layout: "loading"}
}

// Lookup finds the page mounted at path. Unmatched paths get the not-found
// page, and an unresolved tree shows only the loading page.
func (t Tree) Lookup(path string) (Page, bool) {
	if t.Role == Unknown {
		return PageLoading, false
	}
	for _, r := range t.Routes {
		if r.Path == path {
			return r.Page, true
		}
	}
	return PageNotFound, false
}
