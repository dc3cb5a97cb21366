package chatanalysis

// emojiSymbol is one entry of the closed tag-name → symbol table. The
// table is a slice, not a map: the substring fallback in resolveSymbol
// must probe entries in a fixed order to stay deterministic.
type emojiSymbol struct {
	Name    string // Chinese tag name, as it appears between brackets
	Symbol  string // canonical glyph
	English string // display name for collaborators rendering emoji clouds
}

var builtinEmojiSymbols = []emojiSymbol{
	{"微笑", "😊", "Smile"},
	{"开心", "😄", "Happy"},
	{"大笑", "😂", "Laugh"},
	{"可爱", "🥰", "Cute"},
	{"愤怒", "😡", "Angry"},
	{"悲伤", "😢", "Sad"},
	{"惊讶", "😮", "Surprised"},
	{"害怕", "😨", "Scared"},
	{"无语", "😑", "Speechless"},
	{"尴尬", "😅", "Embarrassed"},
	{"思考", "🤔", "Thinking"},
	{"点赞", "👍", "Thumbs up"},
	{"爱心", "❤️", "Heart"},
	{"玫瑰", "🌹", "Rose"},
	{"蛋糕", "🎂", "Cake"},
	{"礼物", "🎁", "Gift"},
	{"笑哭", "😂", "Laugh Cry"},
	{"害羞", "😊", "Shy"},
	{"委屈", "🥺", "Wronged"},
	{"呆", "😶", "Blank"},
	{"疑问", "❓", "Question"},
	{"晕", "😵", "Dizzy"},
	{"衰", "😩", "Depressed"},
	{"叹气", "😮‍💨", "Sigh"},
	{"强", "💪", "Strong"},
	{"弱", "👎", "Weak"},
	{"ok", "👌", "OK"},
	{"拜托", "🙏", "Please"},
	{"呲牙", "😁", "Grin"},
	{"偷笑", "😏", "Smirk"},
	{"再见", "👋", "Goodbye"},
	{"抓狂", "😫", "Crazy"},
	{"鼓掌", "👏", "Clap"},
	{"流汗", "😓", "Sweat"},
	{"憨笑", "😄", "Silly Smile"},
	{"悠闲", "😌", "Relaxed"},
	{"奋斗", "💪", "Struggle"},
	{"咒骂", "🤬", "Curse"},
	{"嘘", "🤫", "Shh"},
	{"折磨", "😖", "Torture"},
	{"骷髅", "💀", "Skull"},
	{"敲打", "👊", "Punch"},
	{"闭嘴", "🤐", "Zip it"},
	{"鄙视", "😤", "Despise"},
	{"闪电", "⚡", "Lightning"},
	{"发抖", "😨", "Shiver"},
	{"难过", "😞", "Sad"},
	{"酷", "😎", "Cool"},
	{"抠鼻", "👃", "Nose"},
	{"坏笑", "😏", "Evil Smile"},
	{"左哼哼", "😤", "Hmph Left"},
	{"右哼哼", "😤", "Hmph Right"},
	{"哈欠", "🥱", "Yawn"},
	{"快哭了", "😢", "About to Cry"},
	{"阴险", "😈", "Sinister"},
	{"亲亲", "😘", "Kiss"},
	{"吓", "😱", "Scared"},
	{"可怜", "🥺", "Pitiful"},
	{"菜刀", "🔪", "Knife"},
	{"西瓜", "🍉", "Watermelon"},
	{"啤酒", "🍺", "Beer"},
	{"篮球", "🏀", "Basketball"},
	{"乒乓", "🏓", "Ping Pong"},
	{"拥抱", "🤗", "Hug"},
	{"握手", "🤝", "Handshake"},
}

// EmojiEnglishName returns the display name for a canonical symbol, or
// "Emoji" when the symbol is not in the built-in table.
func EmojiEnglishName(symbol string) string {
	for _, e := range builtinEmojiSymbols {
		if e.Symbol == symbol {
			return e.English
		}
	}
	return "Emoji"
}
