// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package xmlrpc

import "context"

// Typed wrappers for the WordPress API. Each shapes the positional
// parameter list for one remote procedure, injecting the configured blog id
// and credentials, and returns the decoded response value unmodified
// (a map for single records, a slice of maps for collections).

// Posts.

// GetPost retrieves a post. fields, when given, restricts the returned
// members.
func (c *Client) GetPost(ctx context.Context, postID int, fields ...string) (any, error) {
	params := []any{c.blogID, c.username, c.password, postID}
	if len(fields) > 0 {
		params = append(params, fields)
	}
	return c.Call(ctx, "wp.getPost", params...)
}

// GetPosts retrieves posts matching filter; a nil filter returns the
// default page of recent posts.
func (c *Client) GetPosts(ctx context.Context, filter map[string]any) (any, error) {
	params := []any{c.blogID, c.username, c.password}
	if filter != nil {
		params = append(params, filter)
	}
	return c.Call(ctx, "wp.getPosts", params...)
}

// NewPost creates a post from a content struct and returns its id.
func (c *Client) NewPost(ctx context.Context, content map[string]any) (any, error) {
	return c.Call(ctx, "wp.newPost", c.blogID, c.username, c.password, content)
}

// EditPost updates fields of an existing post.
func (c *Client) EditPost(ctx context.Context, postID int, content map[string]any) (any, error) {
	return c.Call(ctx, "wp.editPost", c.blogID, c.username, c.password, postID, content)
}

// DeletePost deletes a post.
func (c *Client) DeletePost(ctx context.Context, postID int) (any, error) {
	return c.Call(ctx, "wp.deletePost", c.blogID, c.username, c.password, postID)
}

// Post metadata.

func (c *Client) GetPostType(ctx context.Context, name string) (any, error) {
	return c.Call(ctx, "wp.getPostType", c.blogID, c.username, c.password, name)
}

func (c *Client) GetPostTypes(ctx context.Context) (any, error) {
	return c.Call(ctx, "wp.getPostTypes", c.blogID, c.username, c.password)
}

func (c *Client) GetPostFormats(ctx context.Context) (any, error) {
	return c.Call(ctx, "wp.getPostFormats", c.blogID, c.username, c.password)
}

func (c *Client) GetPostStatusList(ctx context.Context) (any, error) {
	return c.Call(ctx, "wp.getPostStatusList", c.blogID, c.username, c.password)
}

// Taxonomies.

func (c *Client) GetTaxonomy(ctx context.Context, taxonomy string) (any, error) {
	return c.Call(ctx, "wp.getTaxonomy", c.blogID, c.username, c.password, taxonomy)
}

func (c *Client) GetTaxonomies(ctx context.Context) (any, error) {
	return c.Call(ctx, "wp.getTaxonomies", c.blogID, c.username, c.password)
}

func (c *Client) GetTerm(ctx context.Context, taxonomy string, termID int) (any, error) {
	return c.Call(ctx, "wp.getTerm", c.blogID, c.username, c.password, taxonomy, termID)
}

// GetTerms retrieves the terms of a taxonomy; a nil filter returns all of
// them.
func (c *Client) GetTerms(ctx context.Context, taxonomy string, filter map[string]any) (any, error) {
	params := []any{c.blogID, c.username, c.password, taxonomy}
	if filter != nil {
		params = append(params, filter)
	}
	return c.Call(ctx, "wp.getTerms", params...)
}

// NewTerm creates a term; content must carry at least "name" and
// "taxonomy".
func (c *Client) NewTerm(ctx context.Context, content map[string]any) (any, error) {
	return c.Call(ctx, "wp.newTerm", c.blogID, c.username, c.password, content)
}

func (c *Client) EditTerm(ctx context.Context, termID int, content map[string]any) (any, error) {
	return c.Call(ctx, "wp.editTerm", c.blogID, c.username, c.password, termID, content)
}

func (c *Client) DeleteTerm(ctx context.Context, taxonomy string, termID int) (any, error) {
	return c.Call(ctx, "wp.deleteTerm", c.blogID, c.username, c.password, taxonomy, termID)
}

// Media.

func (c *Client) GetMediaItem(ctx context.Context, attachmentID int) (any, error) {
	return c.Call(ctx, "wp.getMediaItem", c.blogID, c.username, c.password, attachmentID)
}

func (c *Client) GetMediaLibrary(ctx context.Context, filter map[string]any) (any, error) {
	params := []any{c.blogID, c.username, c.password}
	if filter != nil {
		params = append(params, filter)
	}
	return c.Call(ctx, "wp.getMediaLibrary", params...)
}

// UploadFile sends file bits to the media library. The payload travels
// under the base64 wire type.
func (c *Client) UploadFile(ctx context.Context, name, mimeType string, bits []byte, overwrite bool) (any, error) {
	data := map[string]any{
		"name":      name,
		"type":      mimeType,
		"bits":      Base64(bits),
		"overwrite": overwrite,
	}
	return c.Call(ctx, "wp.uploadFile", c.blogID, c.username, c.password, data)
}

// Comments.

func (c *Client) GetComment(ctx context.Context, commentID int) (any, error) {
	return c.Call(ctx, "wp.getComment", c.blogID, c.username, c.password, commentID)
}

func (c *Client) GetComments(ctx context.Context, filter map[string]any) (any, error) {
	params := []any{c.blogID, c.username, c.password}
	if filter != nil {
		params = append(params, filter)
	}
	return c.Call(ctx, "wp.getComments", params...)
}

// GetCommentCount returns the approved/pending/spam/total counts for a
// post.
func (c *Client) GetCommentCount(ctx context.Context, postID int) (any, error) {
	return c.Call(ctx, "wp.getCommentCount", c.blogID, c.username, c.password, postID)
}

func (c *Client) NewComment(ctx context.Context, postID int, comment map[string]any) (any, error) {
	return c.Call(ctx, "wp.newComment", c.blogID, c.username, c.password, postID, comment)
}

func (c *Client) EditComment(ctx context.Context, commentID int, comment map[string]any) (any, error) {
	return c.Call(ctx, "wp.editComment", c.blogID, c.username, c.password, commentID, comment)
}

func (c *Client) DeleteComment(ctx context.Context, commentID int) (any, error) {
	return c.Call(ctx, "wp.deleteComment", c.blogID, c.username, c.password, commentID)
}

func (c *Client) GetCommentStatusList(ctx context.Context) (any, error) {
	return c.Call(ctx, "wp.getCommentStatusList", c.blogID, c.username, c.password)
}

// Users.

func (c *Client) GetUser(ctx context.Context, userID int, fields ...string) (any, error) {
	params := []any{c.blogID, c.username, c.password, userID}
	if len(fields) > 0 {
		params = append(params, fields)
	}
	return c.Call(ctx, "wp.getUser", params...)
}

func (c *Client) GetUsers(ctx context.Context, filter map[string]any) (any, error) {
	params := []any{c.blogID, c.username, c.password}
	if filter != nil {
		params = append(params, filter)
	}
	return c.Call(ctx, "wp.getUsers", params...)
}

// GetProfile returns the profile of the configured user.
func (c *Client) GetProfile(ctx context.Context, fields ...string) (any, error) {
	params := []any{c.blogID, c.username, c.password}
	if len(fields) > 0 {
		params = append(params, fields)
	}
	return c.Call(ctx, "wp.getProfile", params...)
}

func (c *Client) EditProfile(ctx context.Context, content map[string]any) (any, error) {
	return c.Call(ctx, "wp.editProfile", c.blogID, c.username, c.password, content)
}

func (c *Client) GetAuthors(ctx context.Context) (any, error) {
	return c.Call(ctx, "wp.getAuthors", c.blogID, c.username, c.password)
}

// GetUsersBlogs lists the blogs the configured user can access. The
// procedure takes no blog id.
func (c *Client) GetUsersBlogs(ctx context.Context) (any, error) {
	return c.Call(ctx, "wp.getUsersBlogs", c.username, c.password)
}

// Options.

// GetOptions retrieves site options; with no names it returns all readable
// options.
func (c *Client) GetOptions(ctx context.Context, names ...string) (any, error) {
	params := []any{c.blogID, c.username, c.password}
	if len(names) > 0 {
		params = append(params, names)
	}
	return c.Call(ctx, "wp.getOptions", params...)
}

func (c *Client) SetOptions(ctx context.Context, options map[string]any) (any, error) {
	return c.Call(ctx, "wp.setOptions", c.blogID, c.username, c.password, options)
}

// Demo probes, useful for connectivity checks against a fresh endpoint.

func (c *Client) SayHello(ctx context.Context) (any, error) {
	return c.Call(ctx, "demo.sayHello")
}

func (c *Client) AddTwoNumbers(ctx context.Context, a, b int) (any, error) {
	return c.Call(ctx, "demo.addTwoNumbers", a, b)
}
