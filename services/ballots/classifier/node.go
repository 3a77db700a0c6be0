// Package classifier turns the flat div sequence of an MVIC sample ballot
// into structured offices, candidates and proposals. It is a single
// left-to-right scan per ballot region with an explicit parse context;
// any node that arrives without the context it needs is a fatal
// StructureError for that ballot.
package classifier

import (
	"strings"

	"miballot-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindSection
	KindDivision
	KindOffice
	KindTerm
	KindCandidate
	KindParty
	KindFinanceLink
	KindProposalTitle
	KindProposalText
	KindMobileOnly
)

func (k Kind) String() string {
	switch k {
	case KindSection:
		return "section"
	case KindDivision:
		return "division"
	case KindOffice:
		return "office"
	case KindTerm:
		return "term"
	case KindCandidate:
		return "candidate"
	case KindParty:
		return "party"
	case KindFinanceLink:
		return "financeLink"
	case KindProposalTitle:
		return "proposalTitle"
	case KindProposalText:
		return "proposalText"
	case KindMobileOnly:
		return "mobileOnly"
	}
	return "unknown"
}

var classKinds = map[string]Kind{
	"section":       KindSection,
	"division":      KindDivision,
	"office":        KindOffice,
	"term":          KindTerm,
	"candidate":     KindCandidate,
	"party":         KindParty,
	"financeLink":   KindFinanceLink,
	"proposalTitle": KindProposalTitle,
	"proposalText":  KindProposalText,
	"mobileOnly":    KindMobileOnly,
}

// Node is one element of the classifier's input alphabet: a div tagged with
// exactly one of the known class labels, plus its rendered text and (for
// finance links) the first anchor target.
type Node struct {
	Kind Kind
	Text string
	Href string
}

// CollectNodes flattens a ballot region into the node alphabet, in document
// order. Untagged leaf divs are kept as KindUnknown so the proposal pass can
// recover measure text that the markup failed to label.
func CollectNodes(region *goquery.Selection) []Node {
	var nodes []Node
	region.Find("div").Each(func(_ int, div *goquery.Selection) {
		kind := KindUnknown
		for _, class := range strings.Fields(div.AttrOr("class", "")) {
			if k, ok := classKinds[class]; ok {
				kind = k
				break
			}
		}
		if kind == KindUnknown && div.ChildrenFiltered("div").Length() > 0 {
			// wrapper, not content
			return
		}

		node := Node{
			Kind: kind,
			Text: htmlutil.CleanText(htmlutil.GetText(div.Nodes[0])),
		}
		if kind == KindFinanceLink || kind == KindCandidate {
			node.Href = htmlutil.FirstHref(div)
		}
		nodes = append(nodes, node)
	})
	return nodes
}
