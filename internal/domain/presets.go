package domain

// DefaultSeasons is the season list used when none is configured.
var DefaultSeasons = []string{"S20", "S21", "S22", "S23", "S24", "S25", "S26"}

// PresetMemberNames is the roster seeded into an empty store when no backup
// exists. Carried over verbatim from the legacy dataset.
var PresetMemberNames = []string{
	"銀髮蒼蒼", "甜言蜜語", "CAKE", "魏槿", "阿胖", "雞貝泥", "MY丨蟹蟹", "新垣承宇",
	"鵝成章麻子", "融融丨大麥克", "飛丨嗨嗨嗨", "兲丨蛋(蛙哥)", "冰炫風加小石", "阿益",
	"小一哥", "兲｜Q", "焦糖冰炫風起", "傲慢の罪面面", "昊羲丨長白", "影", "慕成霧",
	"魚柳包丨柄野", "艾那", "慕成雨", "sp大都督", "糖醋醬黑機杯", "烏子明", "寧希",
	"瀨戶環奈", "不理小象", "暴食の罪富富", "九頭魔神金閃", "敬洛丨渝喬", "揚浩怡",
	"杜士逸", "保持", "兲丨大刀", "阿北丨木屐咖", "羊肉滿福堡", "疯小子", "無界丨河馬",
	"麥胞丨小薄荷", "麥胞丨柳柳柳", "兲丨魚觀海", "麥胞丨小薯", "Bigke", "李仲殲",
	"二郎", "KAMO", "一念繾卷", "割鬚丨龐煖", "高尚ㅣNTR", "小貓", "水流雲", "弱女子",
	"青州希望", "丹陽競日", "飛熊哈爾", "解煩檸檬魚", "王羲之", "李嘉誠象", "浪漫錦帆",
	"白馬肆月泱", "白毦柔柔", "栗栗丸子", "無當天雲", "藤甲占咪", "大戟子逸", "虎衛里昂", "西涼夕夫",
}
