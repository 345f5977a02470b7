package convert

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// removeSelectors matches markup that never carries article prose: scripts,
// rating widgets, license boxes, navigation chrome, page furniture, and any
// interactive controls. Matched subtrees are removed wholesale.
var removeSelectors = []string{
	"script", "style", "iframe", "noscript",

	"div.licensebox", "div.rate-box", "div.creditRate", "div.rateBox",
	// warning-box is deliberately absent here: its removal is keyword-gated
	// in pruneGatedBoxes, since some warning boxes are in-universe content.
	"div.info-container", "div.authorlink-wrapper", "div.authorbox",
	"div.authorcontent", "div.footnotes-footer",
	"div.page-options-box", "div.page-options-bottom",
	"div.footer-wikiwalk-nav", "div.page-tags", "div.top-bar",
	"div.content-panel", "div.print-footer", "div.page-rate-widget-box",
	"div.wiki-content-table", "div.credit-box", "div.footnotes",
	"div.page-history", "div.page-files", "div.page-info",
	"div.page-actions", "div.page-meta", "div.page-toolbar",
	"div.page-title", "div.page-header", "div.page-body",
	"div.page-content", "div.page-wrapper", "div.page-container",
	"div.page-main", "div.page-sidebar", "div.page-footer",
	"div.page-nav", "div.page-menu", "div.interactive", "div.clickable",
	"div.button", "div.form", "div.input", "div.textarea", "div.select",
	"div.option", "div.sandbox", "div.simulation", "div.game", "div.hive",
	"div.bee", "div.flower", "div.queen", "div.worker", "div.resource",
	"div.smoke", "div.collection",

	"ul.creditRate", "ul.rateBox",

	"form", "input", "button", "textarea", "select",

	// Find never matches the selection root, so the page-content entry only
	// prunes nested duplicates of the main container, never the container
	// the pipeline is processing.
	"#u-adult-warning", "#header", "#footer", "#side-bar", "#page-content",
	"#main-content",
	"#content", "#sandbox", "#hive", "#bee-simulation", "#interactive-area",
	"#game-area", "#form", "#input", "#button", "#save-button",
	"#reset-button", "#finalOutput", "#SandboxBase", "#queenReturnSandbox",
	"#finalOuterHousing",
}

// eventHandlerAttrs is the full set of inline event handler attributes.
// Elements carrying any of them are interactive and get removed.
var eventHandlerAttrs = []string{
	"onclick", "ondblclick", "onmousedown", "onmouseup", "onmouseover",
	"onmouseout", "onmouseenter", "onmouseleave", "onmousemove",
	"onkeydown", "onkeyup", "onkeypress", "onfocus", "onblur", "onchange",
	"oninput", "onsubmit", "onreset", "onselect", "onload", "onunload",
	"onresize", "onscroll", "ondrag", "ondragstart", "ondragend",
	"ondragenter", "ondragleave", "ondragover", "ondrop", "oncopy",
	"oncut", "onpaste", "ontouchstart", "ontouchend", "ontouchmove",
	"ontouchcancel", "onanimationstart", "onanimationend",
	"onanimationiteration", "ontransitionstart", "ontransitionend",
	"ontransitionrun", "ontransitioncancel", "onwheel", "oncontextmenu",
	"onerror", "onabort", "oncanplay", "oncanplaythrough", "oncuechange",
	"ondurationchange", "onemptied", "onended", "onloadeddata",
	"onloadedmetadata", "onloadstart", "onpause", "onplay", "onplaying",
	"onprogress", "onratechange", "onseeked", "onseeking", "onstalled",
	"onsuspend", "ontimeupdate", "onvolumechange", "onwaiting",
	"onpointerdown", "onpointerup", "onpointermove", "onpointerenter",
	"onpointerleave", "onpointerover", "onpointerout", "onpointercancel",
	"ongotpointercapture", "onlostpointercapture",
}

// jsTokens flag element text that is leaked script rather than prose.
var jsTokens = []string{
	"function", "var ", "let ", "const ", "document.", "window.",
	"alert(", "console.",
}

// cssTokens flag divs that contain raw stylesheet text.
var cssTokens = []string{"@import", "@font-face", "position:", "display:"}

// warningBoxKeywords gate div.warning-box removal: boxes mentioning any of
// these are in-universe document content and survive.
var warningBoxKeywords = []string{
	"clearance", "cognitohazard", "memetic", "level", "authorized",
}

// collapsibleKeywords gate div.collapsible-block removal the same way.
var collapsibleKeywords = []string{
	"containment", "procedure", "description", "addendum", "interview",
	"test", "incident", "experiment",
}

// sanitize strips non-content markup from the tree in place. Each pass
// snapshots its matches before removing, so removals during iteration are
// discarded rather than skipped.
func sanitize(root *goquery.Selection) {
	for _, sel := range removeSelectors {
		removeAll(root.Find(sel))
	}
	removeComments(root)
	removeEventHandlers(root)
	removeSuspiciousStyles(root)
	removeScriptLeaks(root)
	pruneGatedBoxes(root, "div.warning-box", warningBoxKeywords)
	pruneGatedBoxes(root, "div.collapsible-block", collapsibleKeywords)
	removeStrayStyleText(root)
}

// removeAll detaches every node in the selection.
func removeAll(sel *goquery.Selection) {
	for _, n := range append([]*html.Node(nil), sel.Nodes...) {
		detach(n)
	}
}

// removeComments strips all comment nodes, including conditional comments.
func removeComments(root *goquery.Selection) {
	comments := collectNodes(root.Nodes, func(n *html.Node) bool {
		return n.Type == html.CommentNode
	})
	for _, n := range comments {
		detach(n)
	}
}

// removeEventHandlers removes any element carrying an inline event handler.
func removeEventHandlers(root *goquery.Selection) {
	for _, attr := range eventHandlerAttrs {
		removeAll(root.Find("[" + attr + "]"))
	}
}

// removeSuspiciousStyles removes elements whose style attribute embeds
// script or hides the element entirely.
func removeSuspiciousStyles(root *goquery.Selection) {
	root.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style := strings.ToLower(s.AttrOr("style", ""))
		if strings.Contains(style, "javascript:") || strings.Contains(style, "display:none") {
			detach(s.Get(0))
		}
	})
}

// removeScriptLeaks removes elements whose text reads like JavaScript,
// unless they sit inside the recognized article containers. Interactive
// pages leak script bodies into the DOM as bare text; prose inside the
// article container that merely mentions these tokens is kept.
func removeScriptLeaks(root *goquery.Selection) {
	root.Find("*").Each(func(_ int, s *goquery.Selection) {
		text := strings.ToLower(s.Text())
		for _, token := range jsTokens {
			if !strings.Contains(text, token) {
				continue
			}
			if s.ParentsFiltered("div#page-content").Length() == 0 &&
				s.ParentsFiltered("div.scp-content").Length() == 0 {
				detach(s.Get(0))
			}
			return
		}
	})
}

// pruneGatedBoxes removes matches of selector whose text mentions none of
// the keywords.
func pruneGatedBoxes(root *goquery.Selection, selector string, keywords []string) {
	root.Find(selector).Each(func(_ int, s *goquery.Selection) {
		text := strings.ToLower(s.Text())
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				return
			}
		}
		detach(s.Get(0))
	})
}

// removeStrayStyleText removes style elements that escaped the head and
// divs holding raw CSS as text.
func removeStrayStyleText(root *goquery.Selection) {
	root.Find("style").Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered("head").Length() == 0 {
			detach(s.Get(0))
		}
	})
	root.Find("div").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		for _, token := range cssTokens {
			if strings.Contains(text, token) {
				detach(s.Get(0))
				return
			}
		}
	})
}
