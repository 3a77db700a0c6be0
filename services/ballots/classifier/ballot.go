package classifier

// Candidate is one line of an office block after running-mate merging.
type Candidate struct {
	Name        string
	Party       string
	FinanceLink string
}

// Office is an emitted position record. Section is the lowercased bucket
// header it appeared under, Division the cleaned sub-heading. DistrictHint
// carries the term-line district text for the resolver; it is never a
// resolved district by itself.
type Office struct {
	Section      string
	Division     string
	MobileOnly   string
	Party        string
	Name         string
	DistrictHint string
	Term         string
	Incumbency   string
	Seats        int
	Candidates   []Candidate
}

// Proposal is an emitted ballot-measure record. TextRecovered marks bodies
// rebuilt from untagged sibling divs rather than a proposalText label; those
// deserve manual review.
type Proposal struct {
	Section       string
	Division      string
	Title         string
	Text          string
	TextRecovered bool
}

// Ballot is the classifier output: offices and proposals in document order.
type Ballot struct {
	Offices   []*Office
	Proposals []*Proposal
}

// Items reports the total record count, matching what a parse run persists.
func (b *Ballot) Items() int {
	n := len(b.Proposals)
	for _, office := range b.Offices {
		n += 1 + len(office.Candidates)
	}
	return n
}
