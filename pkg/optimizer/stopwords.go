package optimizer

// Fixed stop-word sets, one per script family. Both paths of the
// pretokenizer filter against the set matching their script; mixed-script
// CJK text filters against both.

var latinStopwords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "after": {}, "again": {}, "against": {},
	"all": {}, "also": {}, "am": {}, "an": {}, "and": {}, "any": {}, "are": {},
	"as": {}, "at": {}, "be": {}, "because": {}, "been": {}, "before": {},
	"being": {}, "below": {}, "between": {}, "both": {}, "but": {}, "by": {},
	"can": {}, "could": {}, "did": {}, "do": {}, "does": {}, "doing": {},
	"down": {}, "during": {}, "each": {}, "few": {}, "for": {}, "from": {},
	"further": {}, "had": {}, "has": {}, "have": {}, "having": {}, "he": {},
	"her": {}, "here": {}, "hers": {}, "herself": {}, "him": {}, "himself": {},
	"his": {}, "how": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {},
	"its": {}, "itself": {}, "just": {}, "me": {}, "more": {}, "most": {},
	"my": {}, "myself": {}, "no": {}, "nor": {}, "not": {}, "now": {},
	"of": {}, "off": {}, "on": {}, "once": {}, "only": {}, "or": {},
	"other": {}, "our": {}, "ours": {}, "ourselves": {}, "out": {}, "over": {},
	"own": {}, "same": {}, "she": {}, "should": {}, "so": {}, "some": {},
	"such": {}, "than": {}, "that": {}, "the": {}, "their": {}, "theirs": {},
	"them": {}, "themselves": {}, "then": {}, "there": {}, "these": {},
	"they": {}, "this": {}, "those": {}, "through": {}, "to": {}, "too": {},
	"under": {}, "until": {}, "up": {}, "very": {}, "was": {}, "we": {},
	"were": {}, "what": {}, "when": {}, "where": {}, "which": {}, "while": {},
	"who": {}, "whom": {}, "why": {}, "will": {}, "with": {}, "would": {},
	"you": {}, "your": {}, "yours": {}, "yourself": {}, "yourselves": {},
}

var cjkStopwords = map[string]struct{}{
	"的": {}, "了": {}, "和": {}, "是": {}, "在": {}, "我": {}, "有": {},
	"他": {}, "她": {}, "它": {}, "这": {}, "那": {}, "中": {}, "大": {},
	"来": {}, "上": {}, "下": {}, "个": {}, "到": {}, "说": {}, "们": {},
	"为": {}, "你": {}, "地": {}, "出": {}, "道": {}, "也": {}, "时": {},
	"要": {}, "就": {}, "会": {}, "可": {}, "着": {}, "没": {}, "之": {},
	"都": {}, "而": {}, "及": {}, "与": {}, "或": {}, "被": {}, "把": {},
	"让": {}, "向": {}, "从": {}, "对": {}, "能": {}, "好": {}, "又": {},
	"去": {}, "过": {}, "还": {}, "多": {}, "很": {}, "再": {}, "最": {},
	// Multi-character function words: segmenter output contains these.
	"一个": {}, "我们": {}, "你们": {}, "他们": {}, "她们": {}, "它们": {},
	"什么": {}, "这个": {}, "那个": {}, "这些": {}, "那些": {}, "这样": {},
	"那样": {}, "因为": {}, "所以": {}, "但是": {}, "如果": {}, "就是": {},
	"还是": {}, "不是": {}, "没有": {}, "可以": {}, "已经": {}, "自己": {},
	"以及": {}, "对于": {}, "关于": {}, "通过": {}, "进行": {}, "时候": {},
	"之后": {}, "之前": {}, "其中": {}, "并且": {}, "或者": {}, "虽然": {},
	"然后": {}, "现在": {}, "一些": {}, "非常": {}, "由于": {}, "以后": {},
}

func isLatinStopword(token string) bool {
	_, ok := latinStopwords[token]
	return ok
}

func isCJKStopword(token string) bool {
	_, ok := cjkStopwords[token]
	return ok
}
