// Package mapping provides the YAML schema, parsing, validation and catalog
// building for presenter declaration files.
//
// A declaration file describes presenter types as data so that they can be
// checked against the Go subject types, turned into typed accessors by the
// generator and rendered by the CLI without writing Go.
//
// # Schema Overview
//
//	version: "1"
//	package: blogpresenters
//	presenters:
//	  - name: CommentPresenter
//	    subjects: [comment, post]         # default: [subject]
//	    subject_types:                    # optional, for static checks
//	      comment: blog.Comment
//	      post: blog.Post
//	    expose:
//	      - attrs: [id, body]
//	      - attrs: title
//	        with: post                    # -> post_title
//	      - attrs: author
//	        presenter: UserPresenter      # nested presenter
//	  - name: PostPresenter
//	    methods: [summary]                # bound from the MethodRegistry
//	    serializable: [summary]
//	    delegate:
//	      - to: helpers
//	        methods: [t, l]
//	    expose:
//	      - attrs: [url, caption]
//	        with: cover
//	        wrapper:
//	          switch: cover_kind
//	          cases: {image: ImageCoverPresenter, video: VideoCoverPresenter}
//	  - name: PostSummaryPresenter
//	    extends: PostPresenter
//	    suppress_prefixes: true
//
// # Pipeline
//
//  1. Parse / LoadFile read the YAML and apply defaults.
//  2. Validate reports structural problems as diagnostics, with "did you
//     mean" suggestions for misspelled presenter names.
//  3. CheckSubjects compares attributes with the Go types loaded by the
//     analyze package.
//  4. Build orders presenters parents-first and declares each one,
//     resolving nested and wrapper presenters lazily through the catalog.
package mapping
