// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package xmlrpc

import (
	"context"
	"reflect"
	"testing"
)

// recordingCodec captures the method and parameter list handed to Encode
// and decodes everything to a fixed value.
type recordingCodec struct {
	method string
	params []any
}

func (r *recordingCodec) Encode(method string, params []any) ([]byte, error) {
	r.method = method
	r.params = params
	return []byte("payload"), nil
}

func (r *recordingCodec) Decode([]byte, string) (any, *Fault, error) {
	return "ok", nil, nil
}

func wrapperClient(t *testing.T) (*Client, *recordingCodec) {
	t.Helper()
	codec := &recordingCodec{}
	c := New(WithTransport(&stubTransport{resp: []byte("ignored")}), WithCodec(codec))
	if err := c.Configure("example.com/xmlrpc.php", "bob", "pw"); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	return c, codec
}

func TestWrapperParameterShapes(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name       string
		call       func(c *Client) error
		wantMethod string
		wantParams []any
	}{
		{
			"GetPost",
			func(c *Client) error { _, err := c.GetPost(ctx, 229); return err },
			"wp.getPost",
			[]any{1, "bob", "pw", 229},
		},
		{
			"GetPost with fields",
			func(c *Client) error { _, err := c.GetPost(ctx, 229, "post_title"); return err },
			"wp.getPost",
			[]any{1, "bob", "pw", 229, []string{"post_title"}},
		},
		{
			"GetPosts without filter",
			func(c *Client) error { _, err := c.GetPosts(ctx, nil); return err },
			"wp.getPosts",
			[]any{1, "bob", "pw"},
		},
		{
			"DeleteComment",
			func(c *Client) error { _, err := c.DeleteComment(ctx, 12); return err },
			"wp.deleteComment",
			[]any{1, "bob", "pw", 12},
		},
		{
			"GetTerm",
			func(c *Client) error { _, err := c.GetTerm(ctx, "category", 3); return err },
			"wp.getTerm",
			[]any{1, "bob", "pw", "category", 3},
		},
		{
			"GetUsersBlogs omits blog id",
			func(c *Client) error { _, err := c.GetUsersBlogs(ctx); return err },
			"wp.getUsersBlogs",
			[]any{"bob", "pw"},
		},
		{
			"SayHello carries no credentials",
			func(c *Client) error { _, err := c.SayHello(ctx); return err },
			"demo.sayHello",
			nil,
		},
		{
			"AddTwoNumbers",
			func(c *Client) error { _, err := c.AddTwoNumbers(ctx, 2, 3); return err },
			"demo.addTwoNumbers",
			[]any{2, 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, codec := wrapperClient(t)
			if err := tt.call(c); err != nil {
				t.Fatalf("call: %v", err)
			}
			if codec.method != tt.wantMethod {
				t.Errorf("method %q, want %q", codec.method, tt.wantMethod)
			}
			if !reflect.DeepEqual(codec.params, tt.wantParams) {
				t.Errorf("params %#v, want %#v", codec.params, tt.wantParams)
			}
		})
	}
}

func TestWrapperBlogID(t *testing.T) {
	codec := &recordingCodec{}
	c := New(WithTransport(&stubTransport{resp: []byte("ignored")}), WithCodec(codec), WithBlogID(7))
	if err := c.Configure("example.com", "bob", "pw"); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if _, err := c.GetAuthors(context.Background()); err != nil {
		t.Fatalf("GetAuthors: %v", err)
	}
	if codec.params[0] != 7 {
		t.Errorf("blog id %v, want 7", codec.params[0])
	}
}

func TestUploadFilePayload(t *testing.T) {
	c, codec := wrapperClient(t)
	bits := []byte{0xDE, 0xAD}
	if _, err := c.UploadFile(context.Background(), "a.png", "image/png", bits, true); err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if codec.method != "wp.uploadFile" {
		t.Errorf("method %q", codec.method)
	}
	data, ok := codec.params[3].(map[string]any)
	if !ok {
		t.Fatalf("param 3 is %T, want map", codec.params[3])
	}
	if data["name"] != "a.png" || data["type"] != "image/png" || data["overwrite"] != true {
		t.Errorf("upload struct %#v", data)
	}
	b, ok := data["bits"].(Base64)
	if !ok {
		t.Fatalf("bits is %T, want Base64", data["bits"])
	}
	if string(b) != string(bits) {
		t.Errorf("bits % x", b)
	}
}

func TestWrapperAgainstRealEnvelope(t *testing.T) {
	tr := &stubTransport{resp: successEnvelope(`<struct>` +
		`<member><name>attachment_id</name><value><string>229</string></value></member>` +
		`<member><name>link</name><value><string>http://example.com/a.png</string></value></member>` +
		`</struct>`)}
	c := configuredClient(t, tr)

	v, err := c.GetMediaItem(context.Background(), 229)
	if err != nil {
		t.Fatalf("GetMediaItem: %v", err)
	}
	item, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("got %T, want map", v)
	}
	if item["attachment_id"] != "229" {
		t.Errorf("attachment_id %v", item["attachment_id"])
	}
}
