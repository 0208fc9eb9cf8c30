// Package loader reads description trees from YAML documents.
//
// A document names its format version, optionally defines template
// components, and holds one root node:
//
//	version: v1.0.0
//	components:
//	  Card:
//	    defaults: {tone: plain}
//	    render:
//	      tag: section
//	      props: {class: $tone}
//	      children:
//	        - tag: h1
//	          children: [{text: $title}]
//	        - slot: true
//	root:
//	  tag: main
//	  children:
//	    - component: Card
//	      key: intro
//	      props: {title: Hello}
//	      children: [{text: body}]
//
// Each node is exactly one of a host element (tag), a component reference
// (component), a text node (text) or, inside a template, the slot that
// receives the component's children. Inside a template, a string of the
// form $name is replaced by the component prop of that name.
package loader
