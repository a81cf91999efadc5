package blindnet

import (
	"context"
	"net/url"
)

// operation describes one of the lifecycle endpoints. They all share the same
// request shape and differ only in path and error text.
type operation struct {
	name    string
	prefix  string
	message string
}

var (
	opForgetData = operation{
		name:    "forget_data",
		prefix:  "/api/v1/documents/",
		message: "Error while forgetting the data with id ",
	}
	opRevokeAccess = operation{
		name:    "revoke_access",
		prefix:  "/api/v1/documents/user/",
		message: "Error while revoking access to user with id ",
	}
	opForgetUser = operation{
		name:    "forget_user",
		prefix:  "/api/v1/users/",
		message: "Error while forgetting the user with id ",
	}
	opForgetGroup = operation{
		name:    "forget_group",
		prefix:  "/api/v1/group/",
		message: "Error while forgetting the group with id ",
	}
)

func (o operation) path(id string) string {
	return o.prefix + url.PathEscape(id)
}

// ForgetData deletes one encrypted data key.
func (c *Client) ForgetData(ctx context.Context, dataID string) error {
	return c.deleteResource(ctx, opForgetData, "data id", dataID)
}

// RevokeAccess deletes every encrypted data key belonging to a user.
func (c *Client) RevokeAccess(ctx context.Context, userID string) error {
	return c.deleteResource(ctx, opRevokeAccess, "user id", userID)
}

// ForgetUser deletes a user.
func (c *Client) ForgetUser(ctx context.Context, userID string) error {
	return c.deleteResource(ctx, opForgetUser, "user id", userID)
}

// ForgetGroup deletes a group, all of its users and all of their encrypted
// data keys.
func (c *Client) ForgetGroup(ctx context.Context, groupID string) error {
	return c.deleteResource(ctx, opForgetGroup, "group id", groupID)
}
