package harvest

// evergreenCorpus is the built-in candidate pool used when the
// generation backend is unavailable or a run is configured to skip it.
// Topics are timeless by design so any of them can be published at any
// point without looking stale.
var evergreenCorpus = map[string][]string{
	"IT": {
		"How Docker Containers Work Explained Simply",
		"Understanding APIs for Complete Beginners",
		"Cloud Storage vs Local Storage Which Should You Use",
		"What Is Version Control and Why Developers Need It",
		"Password Managers Explained for Everyday Users",
		"How Websites Actually Load in Your Browser",
		"SQL vs NoSQL Databases for Beginners",
		"What Is a VPN and When Should You Use One",
		"Machine Learning Basics Without the Math",
		"Understanding HTTP and HTTPS the Easy Way",
		"How WiFi Works a Beginner Friendly Guide",
		"Open Source Software What It Means for You",
		"What Is an Operating System Really Doing",
		"Two Factor Authentication Why It Matters",
		"Understanding RAM vs Storage in Your Computer",
	},
	"Finance": {
		"Emergency Fund Basics How Much Is Enough",
		"Index Funds Explained for First Time Investors",
		"Understanding Compound Interest with Simple Examples",
		"Budgeting Methods That Actually Stick",
		"Credit Scores Explained What Moves the Number",
		"Roth IRA vs Traditional IRA Key Differences",
		"How Mortgages Work a First Time Buyer Guide",
		"Dollar Cost Averaging a Beginner Strategy",
		"What Insurance Do You Actually Need",
		"Understanding Capital Gains Tax Basics",
	},
}

// CorpusCandidates returns the evergreen topic list for a category,
// falling back to "IT" for unknown categories.
func CorpusCandidates(category string) []string {
	if topics, ok := evergreenCorpus[category]; ok {
		out := make([]string, len(topics))
		copy(out, topics)
		return out
	}
	out := make([]string, len(evergreenCorpus["IT"]))
	copy(out, evergreenCorpus["IT"])
	return out
}
