package moodtrack

// Reply templates keyed by mood and preferred response type.
var replyTemplates = map[MoodLabel]map[ResponseType][]string{
	MoodStressed: {
		ResponseEmpathy: {
			"とてもお疲れのようですね…。少し休む時間を作れそうですか？",
			"無理をしていませんか？自分をいたわることも大切ですよ。",
			"気持ちが沈んでいるときは、無理せず少し立ち止まっても大丈夫です。",
			"最近頑張りすぎていませんか？自分に優しくしてあげてください。",
			"心の声に耳を傾ける時間も大切です。ひと息つきましょう。",
			"しんどい気持ち、よく伝わってきました。話してくれてありがとう。",
			"何かに追われすぎていませんか？まずは深呼吸してみましょう。",
			"疲れがたまっているようですね。ゆっくり休めていますか？",
		},
		ResponseAdvice: {
			"深呼吸やリラックスできる時間を作ると良いですよ。",
			"一度リフレッシュしてみてはいかがでしょうか？",
			"気分転換に外に出たり、好きな音楽を聴いてみるのもおすすめです。",
			"生活の中に小さな楽しみや安心できる時間を取り入れてみましょう。",
			"必要なときは、専門家に相談するのも前向きな選択です。",
			"自分の心のペースに合わせて、少しずつ進んでいけば大丈夫です。",
			"休息は贅沢ではなく、心のメンテナンスです。しっかり休んでください。",
			"焦らなくていいんです。今は自分のための時間を大切に。",
		},
	},
	MoodPositive: {
		ResponseEmpathy: {
			"いい気分のようですね！その前向きなエネルギー、素敵です！",
			"ご機嫌ですね！何か嬉しいことがありましたか？",
			"そういう気持ち、どんどんシェアしていきましょう！",
			"素晴らしいです！今日一日がもっと良くなりそうですね！",
			"その元気、こちらにも伝わってきました！",
			"気持ちが明るいときって、周りにも良い影響を与えますよね！",
			"元気そうで何よりです。その調子を保ちましょう！",
			"楽しそうですね！今日という日を大切にしてくださいね。",
			"よく頑張りましたね！その努力、素晴らしいです！",
			"やり遂げたんですね！本当に立派です！",
			"すごいですね！そういう報告、とても嬉しいです！",
			"日々の小さな成功も、大きな一歩ですね！",
		},
		ResponseAdvice: {
			"気分が良い日は、新しいことに挑戦するチャンスかもしれませんね！",
			"そのポジティブな気持ちを周りにもシェアしてみましょう！",
			"ご自身を褒めてあげる時間をつくるのも大切です。",
			"笑顔の多い一日を意識して過ごしてみると、もっと素敵な一日になりますよ。",
			"その気持ちを日記に書いておくと、後で読み返して元気をもらえますよ。",
			"気分が良い日は、大切な人に連絡を取ってみるのもおすすめです。",
			"その良い気分を維持できるよう、リラックスした時間も忘れずに。",
		},
	},
	MoodNeutral: {
		ResponseEmpathy: {
			"少し落ち着いた一日ですか？何気ない日常も大切ですよね。",
			"特別なことがなくても、あなたの気持ちは大切です。",
			"今日の気分はまあまあ、そんな日もありますよね。",
			"気持ちが安定しているときも、自分を見つめるチャンスです。",
			"平穏な日も心のケアは忘れずに。",
			"普通の日常でも、自分の心を大切にしましょう。",
			"何気ない瞬間にこそ、幸せが隠れているかもしれません。",
		},
		ResponseAdvice: {
			"ちょっとした気分転換に、深呼吸やストレッチをしてみては？",
			"普段の生活に小さな楽しみを取り入れてみましょう。",
			"普通の日こそ、自分にやさしくしてあげてくださいね。",
			"今の自分の気持ちに気づけるのも大切な力です。",
			"無理せず、でもできることを少しずつやってみましょう。",
			"平常なときにこそ、心の余裕を持つトレーニングになります。",
			"ゆったりとした時間を意識的にとってみましょう。",
		},
	},
}

// followUpQuestions keep Positive/Neutral conversations going.
var followUpQuestions = []string{
	"その出来事でいちばん嬉しかったことは何ですか？",
	"もう少し詳しく教えてもらえますか？",
	"それを感じたとき、どんな気持ちでしたか？",
	"他にもシェアしたいことはありますか？",
	"その後、何か変化はありましたか？",
}

var adviceByMood = map[MoodLabel][]string{
	MoodStressed: {
		"無理をせず、まずは深呼吸をしてリラックスしてみましょう。",
		"ストレスを感じたら、一度手を止めてゆっくりお茶を飲む時間を作るのもおすすめです。",
		"誰かに話すだけでも心が軽くなります。信頼できる人に少し話してみては？",
		"心と身体の回復のために、睡眠をしっかり取ることも大切です。",
		"日光を浴びて散歩するだけでも、気分が少し和らぐかもしれません。",
		"気持ちが落ち着かないときは、軽い運動やストレッチを取り入れてみましょう。",
	},
	MoodPositive: {
		"その良い気分を持続させるために、好きなことをたくさん楽しみましょう！",
		"ポジティブな気持ちを、周りの人にも分けてあげるとさらに気分が上がりますよ！",
		"この気分を忘れないように日記に残してみるのもおすすめです。",
		"気分が良い日は、新しいことにチャレンジする絶好のチャンスです！",
		"笑顔の時間を意識的に作ると、気持ちの良さがさらに深まりますよ。",
	},
	MoodNeutral: {
		"今の穏やかな状態を大切にしながら、小さな楽しみを見つけてみましょう。",
		"少しの運動や自然の中を歩くと、気持ちがリフレッシュできますよ。",
		"心が落ち着いているときに、自分の内面と向き合ってみるのも良い時間です。",
		"いつも頑張っている自分をねぎらうことも忘れずに。",
		"少し先の予定に、楽しみを入れてみると気持ちが明るくなりますよ。",
	},
}

// Support resources.
const (
	SupportCrisisLine     = "https://www.find-help.jp/"
	SupportMentalHealth   = "https://www.mhlw.go.jp/kokoro/soudan.html"
	SupportHarassmentDesk = "https://www.mhlw.go.jp/stf/seisakunitsuite/bunya/0000189195.html"
)

// Fixed messages and annotations.
const (
	sensitiveReply = "そのようなお気持ちを打ち明けてくださってありがとうございます。\n" +
		"つらい時には一人で抱えず、誰かに話すことがとても大切です。\n" +
		"必要であれば、以下の相談窓口もご利用ください：\n" +
		"📞 いのちの電話：" + SupportCrisisLine

	escalationReply = "ストレスが続いているようですね。無理せず専門家の相談を受けてみませんか？"
	checkInReply    = "最近ストレスが続いていますね…大丈夫ですか？"

	stateChangedNote  = "（前回の心理状態「%s」から変化がありますね）"
	sustainedNote     = " 最近ストレスの傾向が続いているようですね。心と体の休息を意識してみてくださいね。"
	moodDroppedNote   = " 少し気分が落ちているようですね。無理しないでください。"
	harassmentNote    = " ※ハラスメントの可能性がある内容が確認されました。困ったときは管理統括部に相談してくださいね。"
	topicDriftNote    = "（最近の話題と少しずれているようですね。何かあったのかもしれませんね）"
	topicContinueNote = "（最近の会話内容とつながりがありますね）"

	// Markers searched for in earlier bot responses.
	stressMarker   = "ストレス"
	positiveMarker = "気分が良い"
)
